package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/cutverse/store"
)

// Key sources reported by GET /settings/api-key.
const (
	keySourceEnv     = "env"
	keySourceSetting = "setting"
)

type apiKeyStatus struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty"`
	Source     string `json:"source,omitempty"`
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// GetAPIKey reports whether a key is configured without revealing it.
func (s *APIV1Service) GetAPIKey(c echo.Context) error {
	if s.Profile.HasEnvAPIKey() {
		return c.JSON(http.StatusOK, apiKeyStatus{
			Configured: true,
			Masked:     store.MaskAPIKey(s.Profile.LLMAPIKey),
			Source:     keySourceEnv,
		})
	}
	key, err := s.Store.APIKey(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load API key").SetInternal(err)
	}
	if key == "" {
		return c.JSON(http.StatusOK, apiKeyStatus{})
	}
	return c.JSON(http.StatusOK, apiKeyStatus{
		Configured: true,
		Masked:     store.MaskAPIKey(key),
		Source:     keySourceSetting,
	})
}

// SetAPIKey saves the key entered in Settings.
func (s *APIV1Service) SetAPIKey(c echo.Context) error {
	var req apiKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "apiKey is required")
	}
	if err := s.Store.SetAPIKey(c.Request().Context(), key); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save API key").SetInternal(err)
	}
	return c.JSON(http.StatusOK, apiKeyStatus{
		Configured: true,
		Masked:     store.MaskAPIKey(key),
		Source:     keySourceSetting,
	})
}

func (s *APIV1Service) DeleteAPIKey(c echo.Context) error {
	if err := s.Store.SetAPIKey(c.Request().Context(), ""); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear API key").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}
