package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/cutverse/ai/reveal"
)

// streamKeepAlive is the interval of SSE comment frames on a quiet stream.
const streamKeepAlive = 15 * time.Second

type revealCreateRequest struct {
	Text string `json:"text"`
	// Format reveals the formatter's plain text instead of the raw text.
	Format bool `json:"format,omitempty"`
}

type revealResponse struct {
	ID string `json:"id"`
	reveal.Snapshot
}

type revealSaveRequest struct {
	Text string `json:"text"`
}

type revealEditResponse struct {
	Text string `json:"text"`
	reveal.Snapshot
}

func (s *APIV1Service) CreateReveal(c echo.Context) error {
	var req revealCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	text := req.Text
	if req.Format {
		text = s.Formatter.Format(text).PlainText()
	}
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	id, snap, err := s.Reveals.Create(text)
	if errors.Is(err, ErrTooManyReveals) {
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create reveal session").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, revealResponse{ID: id, Snapshot: snap})
}

func (s *APIV1Service) GetReveal(c echo.Context) error {
	session, err := s.lookupReveal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revealResponse{ID: c.Param("id"), Snapshot: session.Snapshot()})
}

// StreamReveal sends the session snapshot as server-sent events until the
// session stops revealing, is closed, or the client goes away.
func (s *APIV1Service) StreamReveal(c echo.Context) error {
	// Subscribe before the first snapshot so that no transition falls between them.
	session, updates, unsubscribe, ok := s.Reveals.Subscribe(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "reveal session not found")
	}
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	snap := session.Snapshot()
	if err := writeSnapshotEvent(res, snap); err != nil {
		return nil
	}
	if !snap.Running {
		return nil
	}

	ctx := c.Request().Context()
	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keepAlive.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case snap := <-updates:
			if err := writeSnapshotEvent(res, snap); err != nil {
				return nil
			}
			if !snap.Running {
				return nil
			}
		}
	}
}

func writeSnapshotEvent(res *echo.Response, snap reveal.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return err
	}
	res.Flush()
	return nil
}

// EditReveal stops the animation and returns the full text for editing.
func (s *APIV1Service) EditReveal(c echo.Context) error {
	session, err := s.lookupReveal(c)
	if err != nil {
		return err
	}
	text := session.BeginEdit()
	return c.JSON(http.StatusOK, revealEditResponse{Text: text, Snapshot: session.Snapshot()})
}

func (s *APIV1Service) SaveReveal(c echo.Context) error {
	session, err := s.lookupReveal(c)
	if err != nil {
		return err
	}
	var req revealSaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	session.SaveEdit(req.Text)
	return c.JSON(http.StatusOK, revealResponse{ID: c.Param("id"), Snapshot: session.Snapshot()})
}

func (s *APIV1Service) CancelReveal(c echo.Context) error {
	session, err := s.lookupReveal(c)
	if err != nil {
		return err
	}
	session.CancelEdit()
	return c.JSON(http.StatusOK, revealResponse{ID: c.Param("id"), Snapshot: session.Snapshot()})
}

func (s *APIV1Service) FlushReveal(c echo.Context) error {
	session, err := s.lookupReveal(c)
	if err != nil {
		return err
	}
	session.Flush()
	return c.JSON(http.StatusOK, revealResponse{ID: c.Param("id"), Snapshot: session.Snapshot()})
}

func (s *APIV1Service) DeleteReveal(c echo.Context) error {
	if !s.Reveals.Close(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "reveal session not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) lookupReveal(c echo.Context) (*reveal.Session, error) {
	session, ok := s.Reveals.Get(c.Param("id"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "reveal session not found")
	}
	return session, nil
}
