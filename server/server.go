package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/cutverse/ai/generate"
	"github.com/hrygo/cutverse/ai/metrics"
	"github.com/hrygo/cutverse/internal/profile"
	apiv1 "github.com/hrygo/cutverse/server/router/api/v1"
	"github.com/hrygo/cutverse/server/router/frontend"
	"github.com/hrygo/cutverse/store"
)

// Server is the HTTP front of the tools application.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store
	Metrics *metrics.PrometheusExporter

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
	listener   net.Listener
}

// NewServer assembles routes and middleware. The generator is built from the
// profile when nil.
func NewServer(_ context.Context, profile *profile.Profile, store *store.Store, generator *generate.Generator) (*Server, error) {
	s := &Server{
		Profile: profile,
		Store:   store,
		Metrics: metrics.NewPrometheusExporter(metrics.DefaultConfig()),
	}
	if generator == nil {
		generator = generate.New(generate.ConfigFromProfile(profile, store, s.Metrics))
	}

	e := echo.New()
	e.Debug = profile.IsDev()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency_ms", v.Latency.Milliseconds()}
			if v.Error != nil {
				slog.Warn("http: request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Debug("http: request", attrs...)
			return nil
		},
	}))

	apiV1, err := apiv1.NewAPIV1Service(profile, store, generator, s.Metrics)
	if err != nil {
		return nil, fmt.Errorf("create api service: %w", err)
	}
	apiV1.Register(e)
	frontend.NewFrontendService(profile).Serve(e)

	s.echoServer = e
	s.apiV1 = apiV1
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the listener and serves until Shutdown. A clean shutdown returns nil.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.listener = listener
	s.echoServer.Listener = listener
	slog.Info("server: listening", "addr", listener.Addr().String(), "mode", s.Profile.Mode)

	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes reveal sessions and the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server: shutting down")
	s.apiV1.Close()
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("server: failed to shutdown", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("server: failed to close store", "error", err)
	}
	slog.Info("server: stopped")
}
