package v1

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/cutverse/ai/core/llm"
	"github.com/hrygo/cutverse/ai/generate"
	"github.com/hrygo/cutverse/ai/metrics"
	"github.com/hrygo/cutverse/ai/reveal"
	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/store"
	"github.com/hrygo/cutverse/store/db/sqlite"
)

type fakeLLM struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Chat(context.Context, []llm.Message) (string, *llm.LLMCallStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply, &llm.LLMCallStats{PromptTokens: 3, CompletionTokens: 7}, f.err
}

func (f *fakeLLM) GenerateImage(context.Context, string) (string, error) {
	return "https://images.example/cat.png", f.err
}

func (f *fakeLLM) Warmup(context.Context) {}

func (f *fakeLLM) Model() string { return "fake" }

// heldScheduler never fires, keeping sessions in the revealing state.
type heldScheduler struct{}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

func (heldScheduler) AfterFunc(time.Duration, func()) reveal.Timer { return heldTimer{} }

// eagerScheduler fires every tick at once on its own goroutine.
type eagerScheduler struct{}

type eagerTimer struct{}

func (eagerTimer) Stop() bool { return false }

func (eagerScheduler) AfterFunc(_ time.Duration, f func()) reveal.Timer {
	go f()
	return eagerTimer{}
}

type testServer struct {
	echo    *echo.Echo
	service *APIV1Service
	llm     *fakeLLM
}

func newTestServer(t *testing.T, scheduler reveal.Scheduler) *testServer {
	t.Helper()
	ctx := context.Background()

	p := &profile.Profile{
		Mode:            "dev",
		Driver:          "sqlite",
		DSN:             filepath.Join(t.TempDir(), "api.db"),
		RevealEnabled:   true,
		RevealSpeed:     1,
		FormatCacheSize: 16,
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })

	fake := &fakeLLM{reply: "Study Plan\n\nWeek One:\nRead the first chapter. It is important."}
	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())
	cfg := generate.ConfigFromProfile(p, st, exporter)
	cfg.NewService = func(string) (llm.Service, error) { return fake, nil }

	svc, err := NewAPIV1Service(p, st, generate.New(cfg), exporter)
	require.NoError(t, err)
	svc.Reveals.opts.Scheduler = scheduler
	t.Cleanup(svc.Close)

	e := echo.New()
	svc.Register(e)
	return &testServer{echo: e, service: svc, llm: fake}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	rec := s.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestListAndGetTools(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	rec := s.do(t, http.MethodGet, "/api/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Tools []struct {
			ID string `json:"id"`
		} `json:"tools"`
		Categories []string `json:"categories"`
	}](t, rec)
	assert.Len(t, list.Tools, len(s.service.Generator.Catalog().All()))
	assert.Contains(t, list.Categories, "student")

	rec = s.do(t, http.MethodGet, "/api/v1/tools?category=image", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "image-generator")
	assert.NotContains(t, rec.Body.String(), "essay-writer")

	rec = s.do(t, http.MethodGet, "/api/v1/tools/essay-writer", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/tools/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate_MissingKey(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	rec := s.do(t, http.MethodPost, "/api/v1/tools/summary-generator/generate", `{"values":{"text":"long text"}}`)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	resp := decode[GenerateResponse](t, rec)
	assert.Equal(t, generate.ErrMissingAPIKey.Error(), resp.Error)
	assert.Empty(t, resp.Output)
	assert.Zero(t, s.llm.calls)
	require.NotNil(t, resp.Ad)
	assert.True(t, resp.Ad.ShouldShowAd)
}

func TestGenerate_ValidationAndUnknownTool(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	require.NoError(t, s.service.Store.SetAPIKey(context.Background(), "sk-test-1234"))

	rec := s.do(t, http.MethodPost, "/api/v1/tools/summary-generator/generate", `{"values":{"text":"  "}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[GenerateResponse](t, rec).Error, "Please fill in the Text field.")

	rec = s.do(t, http.MethodPost, "/api/v1/tools/nope/generate", `{"values":{}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/tools/text-to-music/generate", `{"values":{"prompt":"jazz"}}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGenerate_FormatsAndReveals(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	require.NoError(t, s.service.Store.SetAPIKey(context.Background(), "sk-test-1234"))

	rec := s.do(t, http.MethodPost, "/api/v1/tools/summary-generator/generate", `{"values":{"text":"long text"},"reveal":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[GenerateResponse](t, rec)

	assert.Empty(t, resp.Error)
	assert.Equal(t, s.llm.reply, resp.Output)
	require.NotEmpty(t, resp.Document)
	assert.Contains(t, resp.HTML, "<h2>Study Plan</h2>")
	assert.Contains(t, resp.HTML, "<strong>important</strong>")
	assert.Equal(t, "Study Plan\n\nWeek One:\n\nRead the first chapter. It is important.", resp.PlainText)

	require.NotEmpty(t, resp.RevealID)
	require.NotNil(t, resp.Reveal)
	assert.Equal(t, reveal.StateRevealing, resp.Reveal.State)
	assert.Equal(t, resp.PlainText, resp.Reveal.Source)
	assert.Equal(t, 1, s.service.Reveals.Len())
}

func TestGenerate_ImageSkipsFormatting(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	s.service.Profile.LLMAPIKey = "sk-env-5678"
	cfg := generate.ConfigFromProfile(s.service.Profile, s.service.Store, nil)
	cfg.NewService = func(string) (llm.Service, error) { return s.llm, nil }
	s.service.Generator = generate.New(cfg)

	rec := s.do(t, http.MethodPost, "/api/v1/tools/image-generator/generate", `{"values":{"prompt":"a cat"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[GenerateResponse](t, rec)
	assert.Equal(t, "https://images.example/cat.png", resp.Output)
	assert.Equal(t, "image", string(resp.Kind))
	assert.Empty(t, resp.Document)
	assert.Empty(t, resp.HTML)
}

func TestFormatEndpoint(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	rec := s.do(t, http.MethodPost, "/api/v1/format", `{"text":"## My Title\n\nThis is **important**."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[formatResponse](t, rec)
	assert.Equal(t, "My Title\n\nThis is important.", resp.PlainText)
	assert.Contains(t, resp.Markdown, "**important**")
	assert.Contains(t, resp.HTML, "<h2>My Title</h2>")

	rec = s.do(t, http.MethodPost, "/api/v1/format", `{"text":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[formatResponse](t, rec).Document)
}

func TestAPIKeySettings(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	rec := s.do(t, http.MethodGet, "/api/v1/settings/api-key", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[apiKeyStatus](t, rec).Configured)

	rec = s.do(t, http.MethodPut, "/api/v1/settings/api-key", `{"apiKey":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/settings/api-key", `{"apiKey":" sk-abcdefgh "}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/settings/api-key", "")
	status := decode[apiKeyStatus](t, rec)
	assert.True(t, status.Configured)
	assert.Equal(t, "********efgh", status.Masked)
	assert.Equal(t, keySourceSetting, status.Source)
	assert.NotContains(t, rec.Body.String(), "sk-abcdefgh")

	rec = s.do(t, http.MethodDelete, "/api/v1/settings/api-key", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/settings/api-key", "")
	assert.False(t, decode[apiKeyStatus](t, rec).Configured)

	s.service.Profile.LLMAPIKey = "sk-from-env-9999"
	rec = s.do(t, http.MethodGet, "/api/v1/settings/api-key", "")
	status = decode[apiKeyStatus](t, rec)
	assert.Equal(t, keySourceEnv, status.Source)
	assert.Equal(t, "********9999", status.Masked)
}

func TestAdsEndpoints(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	first := decode[map[string]any](t, s.do(t, http.MethodPost, "/api/v1/ads/click", ""))
	assert.Equal(t, true, first["shouldShowAd"])
	assert.EqualValues(t, 1, first["newCount"])

	second := decode[map[string]any](t, s.do(t, http.MethodPost, "/api/v1/ads/click", ""))
	assert.Equal(t, false, second["shouldShowAd"])

	status := decode[map[string]any](t, s.do(t, http.MethodGet, "/api/v1/ads", ""))
	assert.EqualValues(t, 2, status["clickCount"])

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/ads", "").Code)
	status = decode[map[string]any](t, s.do(t, http.MethodGet, "/api/v1/ads", ""))
	assert.EqualValues(t, 0, status["clickCount"])
}

func TestRevealLifecycle(t *testing.T) {
	s := newTestServer(t, heldScheduler{})

	rec := s.do(t, http.MethodPost, "/api/v1/reveal", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/reveal", `{"text":"Hello world."}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[revealResponse](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, reveal.StateRevealing, created.State)
	assert.Empty(t, created.Visible)

	base := "/api/v1/reveal/" + created.ID
	edit := decode[revealEditResponse](t, s.do(t, http.MethodPost, base+"/edit", ""))
	assert.Equal(t, "Hello world.", edit.Text)
	assert.Equal(t, reveal.StateEditing, edit.State)

	cancelled := decode[revealResponse](t, s.do(t, http.MethodPost, base+"/cancel", ""))
	assert.Equal(t, reveal.StateRevealing, cancelled.State)

	s.do(t, http.MethodPost, base+"/edit", "")
	saved := decode[revealResponse](t, s.do(t, http.MethodPost, base+"/save", `{"text":"Hello, edited."}`))
	assert.Equal(t, reveal.StateSaved, saved.State)
	assert.Equal(t, "Hello, edited.", saved.Visible)
	assert.True(t, saved.Edited)

	got := decode[revealResponse](t, s.do(t, http.MethodGet, base, ""))
	assert.Equal(t, "Hello, edited.", got.Visible)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, base, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, base, "").Code)
}

func TestRevealFlush(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	created := decode[revealResponse](t, s.do(t, http.MethodPost, "/api/v1/reveal", `{"text":"Skip ahead."}`))

	flushed := decode[revealResponse](t, s.do(t, http.MethodPost, "/api/v1/reveal/"+created.ID+"/flush", ""))
	assert.Equal(t, reveal.StateComplete, flushed.State)
	assert.Equal(t, "Skip ahead.", flushed.Visible)
}

func TestRevealStream(t *testing.T) {
	s := newTestServer(t, eagerScheduler{})
	srv := httptest.NewServer(s.echo)
	defer srv.Close()

	body := strings.NewReader(`{"text":"One. Two, three!\n\nFour."}`)
	res, err := http.Post(srv.URL+"/api/v1/reveal", echo.MIMEApplicationJSON, body)
	require.NoError(t, err)
	var created revealResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	res.Body.Close()

	res, err = http.Get(srv.URL + "/api/v1/reveal/" + created.ID + "/stream")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get(echo.HeaderContentType))

	var last reveal.Snapshot
	events := 0
	scanner := bufio.NewScanner(res.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		events++
		var snap reveal.Snapshot
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snap))
		assert.True(t, strings.HasPrefix(snap.Source, snap.Visible))
		last = snap
	}
	require.NoError(t, scanner.Err())
	assert.Positive(t, events)
	assert.Equal(t, reveal.StateComplete, last.State)
	assert.Equal(t, "One. Two, three!\n\nFour.", last.Visible)
}

func TestRevealStream_EndsWhenSessionDeleted(t *testing.T) {
	s := newTestServer(t, heldScheduler{})
	srv := httptest.NewServer(s.echo)
	defer srv.Close()

	body := strings.NewReader(`{"text":"A long text that never finishes revealing."}`)
	res, err := http.Post(srv.URL+"/api/v1/reveal", echo.MIMEApplicationJSON, body)
	require.NoError(t, err)
	var created revealResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	res.Body.Close()
	require.True(t, created.Running)

	res, err = http.Get(srv.URL + "/api/v1/reveal/" + created.ID + "/stream")
	require.NoError(t, err)
	defer res.Body.Close()

	scanner := bufio.NewScanner(res.Body)
	nextSnapshot := func() (reveal.Snapshot, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var snap reveal.Snapshot
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snap))
			return snap, true
		}
		return reveal.Snapshot{}, false
	}
	first, ok := nextSnapshot()
	require.True(t, ok)
	require.True(t, first.Running)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/reveal/"+created.ID, nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	done := make(chan reveal.Snapshot, 1)
	go func() {
		var last reveal.Snapshot
		for {
			snap, ok := nextSnapshot()
			if !ok {
				done <- last
				return
			}
			last = snap
		}
	}()

	select {
	case last := <-done:
		assert.True(t, last.Closed)
		assert.False(t, last.Running)
	case <-time.After(2 * time.Second):
		res.Body.Close()
		t.Fatal("stream still open after the session was deleted")
	}
}

func TestRevealRegistry_LimitAndSweep(t *testing.T) {
	r := NewRevealRegistry(RevealOptions{Enabled: true, MaxSessions: 1, IdleTTL: time.Minute, Scheduler: heldScheduler{}})
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	_, _, err := r.Create("first")
	require.NoError(t, err)
	_, _, err = r.Create("second")
	assert.ErrorIs(t, err, ErrTooManyReveals)

	now = now.Add(2 * time.Minute)
	id, _, err := r.Create("third")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	r.CloseAll()
	assert.Zero(t, r.Len())
	_, ok := r.Get(id)
	assert.False(t, ok)
}
