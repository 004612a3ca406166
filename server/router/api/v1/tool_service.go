package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/cutverse/ai/format"
	"github.com/hrygo/cutverse/ai/generate"
	"github.com/hrygo/cutverse/ai/reveal"
	"github.com/hrygo/cutverse/ai/tools"
	"github.com/hrygo/cutverse/plugin/ads"
)

// GenerateRequest is the body of POST /tools/:id/generate.
type GenerateRequest struct {
	Values map[string]string `json:"values"`
	// Reveal asks for a reveal session over the formatted output.
	Reveal bool `json:"reveal,omitempty"`
}

// GenerateResponse extends the generation result with its rendered forms.
type GenerateResponse struct {
	generate.Result
	Kind      tools.Kind       `json:"kind,omitempty"`
	Document  format.Document  `json:"document,omitempty"`
	PlainText string           `json:"plainText,omitempty"`
	HTML      string           `json:"html,omitempty"`
	Ad        *ads.Decision    `json:"ad,omitempty"`
	RevealID  string           `json:"revealId,omitempty"`
	Reveal    *reveal.Snapshot `json:"reveal,omitempty"`
}

type toolList struct {
	Tools      []*tools.Tool    `json:"tools"`
	Categories []tools.Category `json:"categories"`
}

func (s *APIV1Service) ListTools(c echo.Context) error {
	catalog := s.Generator.Catalog()
	list := catalog.All()
	if category := c.QueryParam("category"); category != "" {
		list = catalog.ByCategory(tools.Category(category))
	}
	return c.JSON(http.StatusOK, toolList{Tools: list, Categories: tools.Categories})
}

func (s *APIV1Service) GetTool(c echo.Context) error {
	tool, ok := s.Generator.Catalog().Lookup(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tool not found")
	}
	return c.JSON(http.StatusOK, tool)
}

// GenerateTool runs a tool. The response always carries the {error, output}
// pair; rendered forms are attached only to successful text output.
func (s *APIV1Service) GenerateTool(c echo.Context) error {
	ctx := c.Request().Context()

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp := GenerateResponse{}
	if decision, err := s.Ads.Click(ctx); err != nil {
		slog.Warn("api: ad counter unavailable", "error", err)
	} else {
		resp.Ad = &decision
	}

	out, err := s.Generator.Generate(ctx, c.Param("id"), req.Values)
	resp.Result = generate.NewResult(out.Text, err)
	if !resp.OK() {
		return c.JSON(generateStatus(err), resp)
	}
	resp.Kind = out.Kind
	if out.Kind == tools.KindImage {
		return c.JSON(http.StatusOK, resp)
	}

	doc := s.Formatter.Format(resp.Output)
	resp.Document = doc
	resp.PlainText = doc.PlainText()
	html, err := format.RenderHTML(doc)
	if err != nil {
		slog.Warn("api: render html failed", "tool", c.Param("id"), "error", err)
	} else {
		resp.HTML = html
	}

	if req.Reveal {
		id, snap, err := s.Reveals.Create(resp.PlainText)
		if err != nil {
			slog.Warn("api: reveal session not created", "error", err)
		} else {
			resp.RevealID = id
			resp.Reveal = &snap
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func generateStatus(err error) int {
	var validation *tools.ValidationError
	switch {
	case err == nil:
		return http.StatusBadGateway
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, generate.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, generate.ErrMissingAPIKey):
		return http.StatusPreconditionFailed
	case errors.Is(err, tools.ErrUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
