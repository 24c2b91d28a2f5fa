package ws

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/reversi/internal/domain"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	role := domain.ServerRole(s.role.Load())
	s.logger.Info("new connection", zap.String("master host", s.masterHost.Load()), zap.Any("role", role))
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		s.logger.Warn("empty client uuid header", zap.String("header", domain.ClientUuidHeader))
		http.Error(w, "missing "+domain.ClientUuidHeader+" header", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade connection", zap.Error(err))
		return
	}
	client := newClient(conn, clientUuid)
	defer client.Close()
	switch role {
	case domain.ReserveServer:
		s.logger.Info("request client to switch server", zap.String("master host", s.masterHost.Load()))
		err := client.WriteMessage(domain.Message{
			Type:    domain.SwitchServer,
			Payload: domain.SwitchServerPayload{MasterServer: s.masterHost.Load()},
		})
		if err != nil {
			s.logger.Error("write switch server message", zap.Error(err))
		}
	case domain.MasterServer:
		if err := s.hub.Handle(r.Context(), client); err != nil {
			s.logger.Error("handle client", zap.String("client uuid", clientUuid), zap.Error(err))
		}
	default:
		s.logger.Warn("the client connected before the server role was determined")
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	s.logger.Debug("health checking...")
	resp := domain.HealthCheckResponse{
		MasterServer: s.masterHost.Load(),
		Role:         domain.ServerRole(s.role.Load()),
	}
	if err := jsoniter.NewEncoder(w).Encode(resp); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn("encode health check response", zap.Error(err))
	}
}

func (s *server) applyStates(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("sync states")
	req := make(map[string]domain.GameSnapshot)
	if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.logger.Warn("decode states", zap.Error(err))
		return
	}
	s.hub.ApplyStates(r.Context(), req)
}

func (s *server) defineMaster(w http.ResponseWriter, r *http.Request) {
	req := new(domain.DefineMasterRequest)
	if err := jsoniter.NewDecoder(r.Body).Decode(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.logger.Warn("decode define master request", zap.Error(err))
		return
	}
	resp, err := s.sync.DefineMasterServer(r.Context(), req)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		s.logger.Warn("define master server", zap.Error(err))
		return
	}
	if err := jsoniter.NewEncoder(w).Encode(resp); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn("encode define master response", zap.Error(err))
	}
}
