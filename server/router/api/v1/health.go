package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/cutverse/internal/version"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Version: version.GetCurrentVersion(s.Profile.Mode),
		Mode:    s.Profile.Mode,
	})
}
