package reveal

import (
	"math/rand/v2"
	"time"
)

// PaceConfig tunes the typing rhythm.
type PaceConfig struct {
	Base      time.Duration // ordinary character
	Space     time.Duration // word gap
	Clause    time.Duration // , : ; ! ?
	Sentence  time.Duration // . not ending a line
	Line      time.Duration // single line break
	Paragraph time.Duration // . or line break followed by a line break
	Burst     time.Duration // delay used for a fast burst

	BurstChance float64 // probability that an ordinary character uses Burst
	Jitter      float64 // relative random variation of Base, e.g. 0.2 for ±20%
	MaxChunk    int     // upper bound of characters revealed per tick

	// Documents longer than LongDocument characters are paced proportionally faster,
	// never more than MinLengthFactor of the normal delay.
	LongDocument    int
	MinLengthFactor float64

	// Speed divides every delay; 2 reveals twice as fast.
	Speed float64
}

// DefaultPaceConfig returns the standard rhythm.
func DefaultPaceConfig() PaceConfig {
	return PaceConfig{
		Base:            28 * time.Millisecond,
		Space:           12 * time.Millisecond,
		Clause:          90 * time.Millisecond,
		Sentence:        180 * time.Millisecond,
		Line:            120 * time.Millisecond,
		Paragraph:       360 * time.Millisecond,
		Burst:           2 * time.Millisecond,
		BurstChance:     0.15,
		Jitter:          0.2,
		MaxChunk:        6,
		LongDocument:    800,
		MinLengthFactor: 0.25,
		Speed:           1,
	}
}

// Pacer decides chunk sizes and inter-tick delays. It is not safe for concurrent use;
// a Session only calls it while holding its lock.
type Pacer struct {
	cfg PaceConfig
	rng *rand.Rand
}

// NewPacer returns a pacer drawing randomness from rng. A nil rng uses a randomly
// seeded source.
func NewPacer(cfg PaceConfig, rng *rand.Rand) *Pacer {
	if cfg.MaxChunk <= 0 {
		cfg.MaxChunk = 1
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	if cfg.MinLengthFactor <= 0 || cfg.MinLengthFactor > 1 {
		cfg.MinLengthFactor = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pacer{cfg: cfg, rng: rng}
}

// Config returns the effective configuration.
func (p *Pacer) Config() PaceConfig {
	return p.cfg
}

func isBoundary(r rune) bool {
	switch r {
	case '.', '!', '?', '\n':
		return true
	}
	return false
}

// Chunk returns how many characters to reveal from cursor. Near sentence ends and line
// breaks it reveals one character at a time; elsewhere it types in random bursts.
func (p *Pacer) Chunk(src []rune, cursor int) int {
	remaining := len(src) - cursor
	if remaining <= 0 {
		return 0
	}
	window := min(p.cfg.MaxChunk, remaining)
	for _, r := range src[cursor : cursor+window] {
		if isBoundary(r) {
			return 1
		}
	}
	return 1 + p.rng.IntN(window)
}

// Delay returns the pause after the character at cursor-1 has been revealed.
func (p *Pacer) Delay(src []rune, cursor int) time.Duration {
	if cursor <= 0 || cursor > len(src) {
		return 0
	}
	last := src[cursor-1]
	var next rune
	if cursor < len(src) {
		next = src[cursor]
	}

	var d time.Duration
	switch {
	case (last == '.' || last == '\n') && next == '\n':
		d = p.cfg.Paragraph
	case last == '.':
		d = p.cfg.Sentence
	case last == ',' || last == ':' || last == ';' || last == '!' || last == '?':
		d = p.cfg.Clause
	case last == '\n':
		d = p.cfg.Line
	case last == ' ':
		d = scale(p.cfg.Space, p.progressFactor(src, cursor))
	default:
		if p.rng.Float64() < p.cfg.BurstChance {
			return p.cfg.Burst
		}
		jitter := 1 + (p.rng.Float64()*2-1)*p.cfg.Jitter
		d = scale(p.cfg.Base, p.progressFactor(src, cursor)*jitter)
	}

	return scale(d, p.lengthFactor(len(src))/p.cfg.Speed)
}

// progressFactor shrinks from 1 at the start towards 0.4 at the end of the document.
func (p *Pacer) progressFactor(src []rune, cursor int) float64 {
	remaining := float64(len(src)-cursor) / float64(len(src))
	return 0.4 + 0.6*remaining
}

func (p *Pacer) lengthFactor(n int) float64 {
	if p.cfg.LongDocument <= 0 || n <= p.cfg.LongDocument {
		return 1
	}
	return max(float64(p.cfg.LongDocument)/float64(n), p.cfg.MinLengthFactor)
}

func scale(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
