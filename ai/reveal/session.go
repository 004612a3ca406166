// Package reveal discloses generated text progressively, the way a person would type it.
//
// A Session is a small timer-driven state machine. Each tick reveals a chunk of one to a
// few characters and schedules the next tick with a delay that depends on the character
// just shown. Viewer actions (edit, save, cancel, clear) interrupt the animation at any
// point; at most one tick is ever pending per session.
package reveal

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"
)

// State is the lifecycle stage of a Session.
type State int

const (
	// StateIdle means no content has been assigned.
	StateIdle State = iota
	// StateRevealing means ticks are disclosing the source.
	StateRevealing
	// StateComplete means the whole source is visible.
	StateComplete
	// StateEditing means the viewer is editing the full text.
	StateEditing
	// StateSaved means the viewer's edited text replaced the visible text.
	StateSaved
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateComplete:
		return "complete"
	case StateEditing:
		return "editing"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for st := StateIdle; st <= StateSaved; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("reveal: unknown state %q", text)
}

// Snapshot is a consistent copy of the session state for the display layer.
type Snapshot struct {
	State   State  `json:"state"`
	Source  string `json:"source"`
	Visible string `json:"visible"`
	Cursor  int    `json:"cursor"`
	Length  int    `json:"length"`
	Running bool   `json:"running"`
	Editing bool   `json:"editing"`
	Edited  bool   `json:"edited"`
	// Closed is set once the session is torn down; State then holds the stage it was
	// closed in and no further snapshots follow.
	Closed  bool   `json:"closed"`
}

// Listener receives a snapshot after every state change, in transition order.
// It must not call back into mutating Session methods.
type Listener func(Snapshot)

// Observer is notified of reveal lifecycle events.
type Observer interface {
	RevealStarted(length int)
	RevealCompleted(length int, elapsed time.Duration)
	RevealInterrupted(reason string)
}

// Interruption reasons reported to Observer.
const (
	ReasonSuperseded = "superseded"
	ReasonEdit       = "edit"
	ReasonFlush      = "flush"
	ReasonClear      = "clear"
	ReasonClose      = "close"
)

type checkpoint struct {
	state      State
	visible    string
	cursor     int
	byteCursor int
}

// Session holds one display surface's reveal state.
type Session struct {
	// notifyMu serialises transitions together with their listener call so that
	// listeners observe snapshots in order.
	notifyMu sync.Mutex
	mu       sync.Mutex

	scheduler Scheduler
	pacer     *Pacer
	listener  Listener
	observer  Observer
	enabled   bool
	now       func() time.Time

	source     []rune
	sourceText string
	visible    string
	cursor     int
	byteCursor int
	state      State
	edited     bool
	closed     bool
	preEdit    *checkpoint
	startedAt  time.Time

	pending Timer
	epoch   uint64
	idle    chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) { sess.scheduler = s }
}

// WithPacer replaces the default pacer.
func WithPacer(p *Pacer) Option {
	return func(sess *Session) { sess.pacer = p }
}

// WithListener registers the display callback.
func WithListener(l Listener) Option {
	return func(sess *Session) { sess.listener = l }
}

// WithObserver registers a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(sess *Session) { sess.observer = o }
}

// WithReveal enables or disables animation. Disabled sessions show new content at once.
func WithReveal(enabled bool) Option {
	return func(sess *Session) { sess.enabled = enabled }
}

// WithClock replaces time.Now for elapsed-time reporting.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) { sess.now = now }
}

// NewSession returns an idle session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		enabled: true,
		now:     time.Now,
		idle:    closedChan(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewClockScheduler()
	}
	if s.pacer == nil {
		s.pacer = NewPacer(DefaultPaceConfig(), nil)
	}
	return s
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		Source:  s.sourceText,
		Visible: s.visible,
		Cursor:  s.cursor,
		Length:  len(s.source),
		Running: s.state == StateRevealing && !s.closed,
		Editing: s.state == StateEditing,
		Edited:  s.edited,
		Closed:  s.closed,
	}
}

// Wait blocks until the session is not revealing or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// transition applies fn under the state lock and notifies the listener when fn reports
// a change.
func (s *Session) transition(fn func() bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	changed := fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed && s.listener != nil {
		s.listener(snap)
	}
}

// NewContent assigns freshly generated text. Empty text and text identical to the current
// source are ignored, as is the viewer's own saved edit being fed back.
func (s *Session) NewContent(text string) {
	if text == "" {
		return
	}
	runes := []rune(text)
	normalized := string(runes)

	s.transition(func() bool {
		if s.closed {
			return false
		}
		if s.state != StateIdle && normalized == s.sourceText {
			return false
		}
		if s.edited && normalized == s.visible {
			s.source = runes
			s.sourceText = normalized
			s.cursor = len(runes)
			s.byteCursor = len(normalized)
			return true
		}

		if s.state == StateRevealing {
			s.interruptLocked(ReasonSuperseded)
		}
		s.cancelLocked()

		s.source = runes
		s.sourceText = normalized
		s.visible = ""
		s.cursor = 0
		s.byteCursor = 0
		s.edited = false
		s.preEdit = nil

		if !s.enabled {
			s.showAllLocked()
			s.state = StateComplete
			return true
		}

		s.startedAt = s.now()
		if s.observer != nil {
			s.observer.RevealStarted(len(runes))
		}
		s.enterRevealingLocked(0)
		return true
	})
}

// BeginEdit stops any animation and returns the full text for editing.
func (s *Session) BeginEdit() string {
	var text string
	s.transition(func() bool {
		text = s.visible
		if s.closed {
			return false
		}
		switch s.state {
		case StateRevealing, StateComplete, StateSaved:
		default:
			return false
		}

		s.preEdit = &checkpoint{
			state:      s.state,
			visible:    s.visible,
			cursor:     s.cursor,
			byteCursor: s.byteCursor,
		}
		if s.state == StateRevealing {
			s.interruptLocked(ReasonEdit)
		}
		s.cancelLocked()
		if s.state != StateSaved {
			s.visible = s.sourceText
		}
		s.state = StateEditing
		text = s.visible
		return true
	})
	return text
}

// SaveEdit replaces the visible text with the viewer's edit. The session does not
// animate again until genuinely new content arrives.
func (s *Session) SaveEdit(text string) {
	s.transition(func() bool {
		if s.closed || s.state != StateEditing {
			return false
		}
		s.visible = text
		s.edited = true
		s.cursor = len(s.source)
		s.byteCursor = len(s.sourceText)
		s.preEdit = nil
		s.state = StateSaved
		return true
	})
}

// CancelEdit restores the state from before BeginEdit, resuming an interrupted reveal.
func (s *Session) CancelEdit() {
	s.transition(func() bool {
		if s.closed || s.state != StateEditing || s.preEdit == nil {
			return false
		}
		cp := s.preEdit
		s.preEdit = nil
		s.visible = cp.visible
		s.cursor = cp.cursor
		s.byteCursor = cp.byteCursor

		if cp.state == StateRevealing {
			if s.observer != nil {
				s.observer.RevealStarted(len(s.source) - s.cursor)
			}
			s.startedAt = s.now()
			s.enterRevealingLocked(s.pacer.Delay(s.source, s.cursor))
			return true
		}
		s.state = cp.state
		return true
	})
}

// Flush skips the rest of the animation and shows the full source.
func (s *Session) Flush() {
	s.transition(func() bool {
		if s.closed || s.state != StateRevealing {
			return false
		}
		s.interruptLocked(ReasonFlush)
		s.cancelLocked()
		s.showAllLocked()
		s.state = StateComplete
		return true
	})
}

// Clear discards all content and returns to Idle.
func (s *Session) Clear() {
	s.transition(func() bool {
		if s.closed || s.state == StateIdle {
			return false
		}
		if s.state == StateRevealing {
			s.interruptLocked(ReasonClear)
		}
		s.cancelLocked()
		s.source = nil
		s.sourceText = ""
		s.visible = ""
		s.cursor = 0
		s.byteCursor = 0
		s.edited = false
		s.preEdit = nil
		s.state = StateIdle
		return true
	})
}

// Close tears the session down. It is safe to call more than once; later actions
// are ignored.
func (s *Session) Close() {
	s.transition(func() bool {
		if s.closed {
			return false
		}
		if s.state == StateRevealing {
			s.interruptLocked(ReasonClose)
		}
		s.cancelLocked()
		s.closed = true
		return true
	})
}

func (s *Session) tick(epoch uint64) {
	s.transition(func() bool {
		if s.closed || epoch != s.epoch || s.state != StateRevealing {
			return false
		}
		s.pending = nil

		n := s.pacer.Chunk(s.source, s.cursor)
		for i := 0; i < n; i++ {
			s.byteCursor += utf8.RuneLen(s.source[s.cursor])
			s.cursor++
		}
		s.visible = s.sourceText[:s.byteCursor]

		if s.cursor >= len(s.source) {
			s.state = StateComplete
			s.markIdleLocked()
			if s.observer != nil {
				s.observer.RevealCompleted(len(s.source), s.now().Sub(s.startedAt))
			}
			return true
		}

		s.scheduleLocked(s.pacer.Delay(s.source, s.cursor))
		return true
	})
}

func (s *Session) enterRevealingLocked(first time.Duration) {
	s.state = StateRevealing
	s.idle = make(chan struct{})
	s.scheduleLocked(first)
}

func (s *Session) scheduleLocked(d time.Duration) {
	epoch := s.epoch
	s.pending = s.scheduler.AfterFunc(d, func() { s.tick(epoch) })
}

// cancelLocked drops the pending tick, if any, and invalidates callbacks already in
// flight. Calling it with nothing pending only bumps the epoch.
func (s *Session) cancelLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.epoch++
	s.markIdleLocked()
}

func (s *Session) markIdleLocked() {
	select {
	case <-s.idle:
	default:
		close(s.idle)
	}
}

func (s *Session) showAllLocked() {
	s.cursor = len(s.source)
	s.byteCursor = len(s.sourceText)
	s.visible = s.sourceText
}

func (s *Session) interruptLocked(reason string) {
	if s.observer != nil {
		s.observer.RevealInterrupted(reason)
	}
}
