package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *APIV1Service) ClickAd(c echo.Context) error {
	decision, err := s.Ads.Click(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update ad counter").SetInternal(err)
	}
	return c.JSON(http.StatusOK, decision)
}

func (s *APIV1Service) GetAdStatus(c echo.Context) error {
	state, err := s.Ads.Status(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load ad counter").SetInternal(err)
	}
	return c.JSON(http.StatusOK, state)
}

func (s *APIV1Service) ResetAds(c echo.Context) error {
	if err := s.Ads.Reset(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset ad counter").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}
