package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/cutverse/ai/format"
	"github.com/hrygo/cutverse/ai/generate"
	"github.com/hrygo/cutverse/ai/metrics"
	"github.com/hrygo/cutverse/ai/reveal"
	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/plugin/ads"
	"github.com/hrygo/cutverse/store"
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Generator *generate.Generator
	Formatter *format.Cache
	Ads       *ads.Counter
	Metrics   *metrics.PrometheusExporter
	Reveals   *RevealRegistry
}

// NewAPIV1Service wires the HTTP handlers to the application services.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, generator *generate.Generator, exporter *metrics.PrometheusExporter) (*APIV1Service, error) {
	// Interfaces stay nil without an exporter so that callers skip recording.
	var (
		cacheObserver  format.CacheObserver
		adRecorder     ads.Recorder
		revealObserver reveal.Observer
	)
	if exporter != nil {
		cacheObserver = exporter
		adRecorder = exporter
		revealObserver = exporter
	}
	formatter, err := format.NewCache(profile.FormatCacheSize, cacheObserver)
	if err != nil {
		return nil, err
	}

	return &APIV1Service{
		Profile:   profile,
		Store:     store,
		Generator: generator,
		Formatter: formatter,
		Ads:       ads.NewCounter(store, adRecorder),
		Metrics:   exporter,
		Reveals:   NewRevealRegistry(RevealOptionsFromProfile(profile, revealObserver)),
	}, nil
}

// Register mounts the API routes on e.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)
	if s.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	corsHandler := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	})
	g := e.Group("/api/v1", corsHandler)

	g.GET("/tools", s.ListTools)
	g.GET("/tools/:id", s.GetTool)
	g.POST("/tools/:id/generate", s.GenerateTool)

	g.POST("/format", s.FormatText)

	g.GET("/settings/api-key", s.GetAPIKey)
	g.PUT("/settings/api-key", s.SetAPIKey)
	g.DELETE("/settings/api-key", s.DeleteAPIKey)

	g.POST("/ads/click", s.ClickAd)
	g.GET("/ads", s.GetAdStatus)
	g.DELETE("/ads", s.ResetAds)

	g.POST("/reveal", s.CreateReveal)
	g.GET("/reveal/:id", s.GetReveal)
	g.GET("/reveal/:id/stream", s.StreamReveal)
	g.POST("/reveal/:id/edit", s.EditReveal)
	g.POST("/reveal/:id/save", s.SaveReveal)
	g.POST("/reveal/:id/cancel", s.CancelReveal)
	g.POST("/reveal/:id/flush", s.FlushReveal)
	g.DELETE("/reveal/:id", s.DeleteReveal)
}

// Close releases every reveal session.
func (s *APIV1Service) Close() {
	s.Reveals.CloseAll()
}
