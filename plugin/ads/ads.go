// Package ads counts generate clicks and decides when an ad link is due.
//
// An ad is due on every odd click (1st, 3rd, 5th...), so each ad is followed by
// one free generation. Consecutive ads alternate between two links.
package ads

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Ad links, alternated per ad shown.
const (
	Link1 = "https://omg10.com/4/10649293"
	Link2 = "https://omg10.com/4/10649295"
)

// CounterKey is the settings key holding the persisted counter.
const CounterKey = "ai_tools_ad_counter"

// KV is the subset of the settings store the counter needs.
type KV interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// Recorder receives click metrics.
type Recorder interface {
	RecordAdClick(shown bool)
}

// State is the persisted counter.
type State struct {
	ClickCount int   `json:"clickCount"`
	LastReset  int64 `json:"lastReset"` // unix milliseconds
}

// Decision is the outcome of one click.
type Decision struct {
	ShouldShowAd bool   `json:"shouldShowAd"`
	NewCount     int    `json:"newCount"`
	AdURL        string `json:"adUrl"`
}

// LinkForClick returns the ad link for the click numbered count.
func LinkForClick(count int) string {
	adNumber := (count + 1) / 2
	if adNumber%2 == 1 {
		return Link1
	}
	return Link2
}

// Counter persists click counts in a KV store. Clicks are serialised within a process.
type Counter struct {
	kv       KV
	recorder Recorder
	now      func() time.Time

	mu sync.Mutex
}

// NewCounter returns a counter backed by kv. recorder may be nil.
func NewCounter(kv KV, recorder Recorder) *Counter {
	return &Counter{kv: kv, recorder: recorder, now: time.Now}
}

// Status returns the current counter without changing it.
func (c *Counter) Status(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Click records a generate click and reports whether an ad is due.
func (c *Counter) Click(ctx context.Context) (Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.load(ctx)
	if err != nil {
		return Decision{}, err
	}
	state.ClickCount++

	d := Decision{
		ShouldShowAd: state.ClickCount%2 == 1,
		NewCount:     state.ClickCount,
		AdURL:        LinkForClick(state.ClickCount),
	}

	// A failed save still returns the decision so generation is never blocked by the counter.
	if err := c.save(ctx, state); err != nil {
		slog.Warn("ads: failed to save counter", "error", err)
	}
	if c.recorder != nil {
		c.recorder.RecordAdClick(d.ShouldShowAd)
	}
	return d, nil
}

// Reset clears the counter.
func (c *Counter) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.DeleteSetting(ctx, CounterKey); err != nil {
		return errors.Wrap(err, "failed to reset ad counter")
	}
	return nil
}

func (c *Counter) fresh() State {
	return State{LastReset: c.now().UnixMilli()}
}

func (c *Counter) load(ctx context.Context) (State, error) {
	raw, ok, err := c.kv.GetSetting(ctx, CounterKey)
	if err != nil {
		return State{}, errors.Wrap(err, "failed to read ad counter")
	}
	if !ok || raw == "" {
		return c.fresh(), nil
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil || state.ClickCount < 0 {
		slog.Warn("ads: stored counter is corrupt, starting over", "error", err)
		return c.fresh(), nil
	}
	return state, nil
}

func (c *Counter) save(ctx context.Context, state State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.kv.SetSetting(ctx, CounterKey, string(b))
}
