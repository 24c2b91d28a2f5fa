package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/reversi/internal/domain"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type server struct {
	srv        *http.Server
	hub        domain.HubUseCase
	sync       domain.SyncUseCase
	role       *atomic.String
	masterHost *atomic.String
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func New(addr string, hub domain.HubUseCase, sync domain.SyncUseCase, logger *zap.Logger) *server {
	s := &server{
		hub:        hub,
		sync:       sync,
		role:       atomic.NewString(""),
		masterHost: atomic.NewString(""),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	return s
}

// ListenAndServe serves requests and follows the role of this server until
// ctx is done.
func (s *server) ListenAndServe(ctx context.Context) {
	go func() {
		s.logger.Info("starting listening address: " + s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil {
			s.logger.Info(err.Error())
		}
	}()
	go s.sync.Sync(ctx, s.hub.GamesStates())
	go s.sync.DefineServerRole(ctx, "")
	go func() {
		if err := s.sync.CheckMasterHealth(ctx); err != nil {
			s.logger.Error("check master health", zap.Error(err))
		}
	}()
	for {
		select {
		case info := <-s.sync.Chan():
			s.logger.Info("server info", zap.Any("info", info))
			s.masterHost.Store(info.MasterServerName)
			s.role.Store(string(info.ServerRole))
		case <-ctx.Done():
			return
		}
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/game", s.serveWs)
	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("POST /sync", s.applyStates)
	mux.HandleFunc("POST /master", s.defineMaster)
	return mux
}
