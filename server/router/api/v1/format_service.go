package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/cutverse/ai/format"
)

type formatRequest struct {
	Text string `json:"text"`
}

type formatResponse struct {
	Document  format.Document `json:"document"`
	PlainText string          `json:"plainText"`
	Markdown  string          `json:"markdown"`
	HTML      string          `json:"html"`
}

// FormatText runs the formatter over arbitrary text.
func (s *APIV1Service) FormatText(c echo.Context) error {
	var req formatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	doc := s.Formatter.Format(req.Text)
	if doc == nil {
		doc = format.Document{}
	}
	html, err := format.RenderHTML(doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render document").SetInternal(err)
	}
	return c.JSON(http.StatusOK, formatResponse{
		Document:  doc,
		PlainText: doc.PlainText(),
		Markdown:  doc.Markdown(),
		HTML:      html,
	})
}
