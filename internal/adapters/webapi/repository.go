package webapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/pkg/errors"
)

const (
	clientTimeout        = 5 * time.Second
	syncStatesEndpoint   = "/sync"
	healthCheckEndpoint  = "/health"
	defineMasterEndpoint = "/master"
)

type repository struct {
	cli *http.Client
}

func New() repository {
	return repository{
		cli: &http.Client{Timeout: clientTimeout},
	}
}

func (r repository) Sync(ctx context.Context, addr string, states map[string]domain.GameSnapshot) error {
	return r.call(ctx, http.MethodPost, addr, syncStatesEndpoint, states, nil)
}

func (r repository) HealthCheck(ctx context.Context, addr string) (*domain.HealthCheckResponse, error) {
	result := new(domain.HealthCheckResponse)
	if err := r.call(ctx, http.MethodGet, addr, healthCheckEndpoint, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r repository) DefineMaster(ctx context.Context, req domain.DefineMasterRequest, addr string) (domain.DefineMasterResponse, error) {
	result := domain.DefineMasterResponse{}
	if err := r.call(ctx, http.MethodPost, addr, defineMasterEndpoint, req, &result); err != nil {
		return domain.DefineMasterResponse{}, err
	}
	return result, nil
}

func (r repository) call(ctx context.Context, method, addr, endpoint string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := jsoniter.Marshal(body)
		if err != nil {
			return errors.WithMessage(err, "marshal json body")
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, addr+endpoint, reqBody)
	if err != nil {
		return errors.WithMessagef(err, "new %s request", method)
	}
	resp, err := r.cli.Do(req)
	if err != nil {
		return errors.WithMessagef(err, "call http endpoint '%s'", endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected response status '%s'", resp.Status)
	}
	if result == nil {
		return nil
	}
	if err := jsoniter.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.WithMessage(err, "decode json response body")
	}
	return nil
}
