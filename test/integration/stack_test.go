//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/jsamuelsen/quotedash/internal/adapters/clients"
	"github.com/jsamuelsen/quotedash/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotedash/internal/adapters/credentials"
	apihttp "github.com/jsamuelsen/quotedash/internal/adapters/http"
	"github.com/jsamuelsen/quotedash/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/platform/config"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

const configDir = "../../configs"

// stack is the dashboard API wired the way cmd/service wires it, in front of
// a fake quote API.
type stack struct {
	remote *fakeYouQuote
	api    *httptest.Server
	cfg    *config.Config

	store  *credentials.Store
	creds  *app.Credentials
	client *clients.Client
	dash   *app.Dashboard
}

// newStack loads the test profile, points it at remote and applies
// overrides before validation.
func newStack(remote *fakeYouQuote, overrides ...func(*config.Config)) (*stack, error) {
	cfg, err := config.LoadFrom(configDir, "test")
	if err != nil {
		return nil, err
	}

	cfg.API.BaseURL = remote.URL
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	}, io.Discard)

	store, err := credentials.Open(credentials.Options{
		Path:     cfg.Session.StorePath,
		InMemory: cfg.Session.InMemory,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	creds := app.NewCredentials(store, logger)

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.API.BaseURL,
		ServiceName: cfg.API.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.BearerAuth(creds),
		Logger:      logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	dash := app.NewDashboard(acl.NewYouQuote(acl.NewGateway(client, creds, logger), logger), creds, app.DashboardConfig{
		PopularLimit: cfg.Dashboard.PopularLimit,
		LongestLimit: cfg.Dashboard.LongestLimit,
		LoadTimeout:  cfg.Dashboard.LoadTimeout,
		Logger:       logger,
	})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(client)
	_ = registry.Register(store)

	server := apihttp.New(&cfg.Server, logger)
	apihttp.SetupRouter(server.Engine(), apihttp.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Dashboard:     dash,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo(cfg.App.Name, "test", "none", "never")),
		Timeout:       cfg.Server.RequestTimeout,
	})

	return &stack{
		remote: remote,
		api:    httptest.NewServer(server.Engine()),
		cfg:    cfg,
		store:  store,
		creds:  creds,
		client: client,
		dash:   dash,
	}, nil
}

func (s *stack) Close() {
	s.api.Close()
	_ = s.store.Close()
}

// response is a dashboard API answer with its body read.
type response struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r *response) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body %s)", err, r.Body)
	}

	return v, nil
}

// Do sends a request to the dashboard API. body may be nil, a string of JSON
// or any value to encode.
func (s *stack) Do(method, path string, body any, headers ...string) (*response, error) {
	var reader io.Reader = http.NoBody

	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.api.URL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.api.Client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Login signs in through the dashboard API.
func (s *stack) Login(email, password string) (*response, error) {
	return s.Do(http.MethodPost, "/api/v1/session/login", map[string]string{"email": email, "password": password})
}
