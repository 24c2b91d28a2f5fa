package synchronizer

import (
	"context"
	"fmt"
	"time"

	"github.com/kiryu-dev/reversi/internal/config"
	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type useCase struct {
	repo       domain.SyncRepository
	addrs      map[string]string
	masterName *atomic.String
	serverName string
	logger     *zap.Logger
	period     time.Duration
	srvChan    chan domain.ServerInfo
}

const httpPrefix = "http://"

func New(repo domain.SyncRepository, cfg config.Config, logger *zap.Logger) *useCase {
	addrs := make(map[string]string)
	for _, srv := range cfg.Servers {
		if srv.Host != cfg.Name {
			addrs[srv.Host] = fmt.Sprintf("%s%s:%d", httpPrefix, srv.Host, srv.Port)
		}
	}
	logger.Info("defined servers", zap.String("server name", cfg.Name), zap.Any("servers", addrs))
	return &useCase{
		repo:       repo,
		addrs:      addrs,
		serverName: cfg.Name,
		masterName: atomic.NewString(cfg.Name),
		logger:     logger,
		period:     cfg.HealthCheckPeriod,
		srvChan:    make(chan domain.ServerInfo),
	}
}

func (u *useCase) Sync(ctx context.Context, statesChan <-chan map[string]domain.GameSnapshot) {
	for {
		select {
		case v := <-statesChan:
			if u.masterName.Load() != u.serverName {
				continue
			}
			u.logger.Info("starting sync games states...", zap.Int("games", len(v)))
			for host, addr := range u.addrs {
				if err := u.repo.Sync(ctx, addr, v); err != nil {
					u.logger.Warn("sync games states", zap.String("host", host), zap.Error(err))
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (u *useCase) DefineMasterServer(_ context.Context, req *domain.DefineMasterRequest) (domain.DefineMasterResponse, error) {
	u.logger.Info("define master server", zap.Any("req", req))
	if req.MasterToIgnore != "" && req.MasterToIgnore == u.masterName.Load() {
		u.masterName.Store(u.serverName)
	}

	if req.InitiatorMasterServerName == u.masterName.Load() {
		return domain.DefineMasterResponse{
			MasterServerName: u.masterName.Load(),
		}, nil
	}

	if _, ok := u.addrs[req.InitiatorMasterServerName]; !ok {
		u.logger.Warn("undefined server", zap.String("host", req.InitiatorMasterServerName))
		return domain.DefineMasterResponse{}, errors.Errorf("undefined server '%s'", req.InitiatorMasterServerName)
	}

	u.compareWithCurrentMaster(req.InitiatorMasterServerName)

	return domain.DefineMasterResponse{
		MasterServerName: u.masterName.Load(),
	}, nil
}

func (u *useCase) DefineServerRole(ctx context.Context, masterToIgnore string) {
	for host, addr := range u.addrs {
		if host == masterToIgnore {
			continue
		}
		resp, err := u.repo.DefineMaster(ctx, domain.DefineMasterRequest{
			InitiatorMasterServerName: u.masterName.Load(),
			MasterToIgnore:            masterToIgnore,
		}, addr)
		if err != nil {
			u.logger.Warn("define master", zap.String("host", host), zap.Error(err))
			continue
		}
		u.compareWithCurrentMaster(resp.MasterServerName)
	}

	serverRole := domain.ReserveServer
	masterName := u.masterName.Load()
	if masterName == u.serverName {
		serverRole = domain.MasterServer
	}

	select {
	case u.srvChan <- domain.ServerInfo{
		ServerRole:       serverRole,
		MasterServerName: masterName,
	}:
	case <-ctx.Done():
	}
}

// CheckMasterHealth polls the current master until ctx is done and starts a
// new election when it stops answering.
func (u *useCase) CheckMasterHealth(ctx context.Context) error {
	ticker := time.NewTicker(u.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		masterName := u.masterName.Load()
		if masterName == u.serverName {
			continue
		}
		u.logger.Debug("checking master server's health", zap.String("host", masterName))

		masterAddr, ok := u.addrs[masterName]
		if !ok {
			return errors.Errorf("undefined master server '%s'", masterName)
		}

		if _, err := u.repo.HealthCheck(ctx, masterAddr); err != nil {
			u.logger.Warn("master server is unavailable", zap.String("host", masterName), zap.Error(err))
			u.masterName.CompareAndSwap(masterName, u.serverName)
			u.DefineServerRole(ctx, masterName)
		}
	}
}

func (u *useCase) compareWithCurrentMaster(newMasterServerName string) {
	masterName := u.masterName.Load()
	if masterName == "" || masterName > newMasterServerName {
		u.masterName.Store(newMasterServerName)
		u.logger.Info("new master server", zap.String("host", newMasterServerName))
	}
}

func (u *useCase) Addresses() map[string]string {
	return u.addrs
}

func (u *useCase) Chan() <-chan domain.ServerInfo {
	return u.srvChan
}
