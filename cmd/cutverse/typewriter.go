package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hrygo/cutverse/ai/reveal"
)

// typewriter prints the newly visible part of each snapshot. Terminal output
// cannot be taken back, so snapshots that do not extend what was printed are
// skipped.
type typewriter struct {
	out     io.Writer
	printed string
}

func newTypewriter(out io.Writer) *typewriter {
	return &typewriter{out: out}
}

func (t *typewriter) update(snap reveal.Snapshot) {
	if !strings.HasPrefix(snap.Visible, t.printed) {
		return
	}
	delta := snap.Visible[len(t.printed):]
	if delta == "" {
		return
	}
	fmt.Fprint(t.out, delta)
	t.printed = snap.Visible
}
