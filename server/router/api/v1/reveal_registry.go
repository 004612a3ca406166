package v1

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrygo/cutverse/ai/reveal"
	"github.com/hrygo/cutverse/internal/profile"
)

// ErrTooManyReveals is returned when the registry is full of live sessions.
var ErrTooManyReveals = errors.New("too many reveal sessions")

// RevealOptions configures sessions created by the registry.
type RevealOptions struct {
	Enabled  bool
	Pace     reveal.PaceConfig
	Observer reveal.Observer

	// IdleTTL is how long an untouched session is kept.
	IdleTTL     time.Duration
	MaxSessions int

	// Scheduler overrides the wall clock, for tests.
	Scheduler reveal.Scheduler
}

// RevealOptionsFromProfile returns registry options for the profile.
func RevealOptionsFromProfile(p *profile.Profile, observer reveal.Observer) RevealOptions {
	pace := reveal.DefaultPaceConfig()
	if p.RevealSpeed > 0 {
		pace.Speed = p.RevealSpeed
	}
	return RevealOptions{
		Enabled:     p.RevealEnabled,
		Pace:        pace,
		Observer:    observer,
		IdleTTL:     30 * time.Minute,
		MaxSessions: 1024,
	}
}

// hub fans session snapshots out to stream subscribers. Slow subscribers only
// ever see the latest snapshot.
type hub struct {
	mu   sync.Mutex
	subs map[chan reveal.Snapshot]struct{}
}

func (h *hub) publish(snap reveal.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (h *hub) subscribe() (<-chan reveal.Snapshot, func()) {
	ch := make(chan reveal.Snapshot, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

type revealEntry struct {
	session  *reveal.Session
	hub      *hub
	lastUsed time.Time
}

// RevealRegistry owns the reveal sessions of the HTTP API. Each session is
// independent and addressed by a random id.
type RevealRegistry struct {
	opts RevealOptions
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*revealEntry
}

// NewRevealRegistry returns an empty registry.
func NewRevealRegistry(opts RevealOptions) *RevealRegistry {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1024
	}
	return &RevealRegistry{
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*revealEntry),
	}
}

// Create starts a session revealing text and returns its id.
func (r *RevealRegistry) Create(text string) (string, reveal.Snapshot, error) {
	r.mu.Lock()
	r.sweepLocked()
	if len(r.sessions) >= r.opts.MaxSessions {
		r.mu.Unlock()
		return "", reveal.Snapshot{}, ErrTooManyReveals
	}

	h := &hub{subs: make(map[chan reveal.Snapshot]struct{})}
	opts := []reveal.Option{
		reveal.WithListener(h.publish),
		reveal.WithReveal(r.opts.Enabled),
		reveal.WithPacer(reveal.NewPacer(r.opts.Pace, nil)),
	}
	if r.opts.Observer != nil {
		opts = append(opts, reveal.WithObserver(r.opts.Observer))
	}
	if r.opts.Scheduler != nil {
		opts = append(opts, reveal.WithScheduler(r.opts.Scheduler))
	}
	session := reveal.NewSession(opts...)

	id := uuid.NewString()
	r.sessions[id] = &revealEntry{session: session, hub: h, lastUsed: r.now()}
	r.mu.Unlock()

	session.NewContent(text)
	return id, session.Snapshot(), nil
}

// Get returns the session with id and marks it used.
func (r *RevealRegistry) Get(id string) (*reveal.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.session, true
}

// Subscribe returns a channel of snapshots published after the call.
func (r *RevealRegistry) Subscribe(id string) (*reveal.Session, <-chan reveal.Snapshot, func(), bool) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		e.lastUsed = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return nil, nil, nil, false
	}
	ch, cancel := e.hub.subscribe()
	return e.session, ch, cancel, true
}

// Close closes and forgets the session with id.
func (r *RevealRegistry) Close(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		e.session.Close()
	}
	return ok
}

// CloseAll closes every session.
func (r *RevealRegistry) CloseAll() {
	r.mu.Lock()
	entries := r.sessions
	r.sessions = make(map[string]*revealEntry)
	r.mu.Unlock()
	for _, e := range entries {
		e.session.Close()
	}
}

// Len returns the number of live sessions.
func (r *RevealRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *RevealRegistry) sweepLocked() {
	cutoff := r.now().Add(-r.opts.IdleTTL)
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			// Close takes the session lock only; safe while holding the registry lock.
			e.session.Close()
			slog.Debug("reveal: expired idle session", "id", id)
		}
	}
}
