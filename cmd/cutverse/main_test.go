package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/cutverse/ai/reveal"
)

func TestParseFields(t *testing.T) {
	values, err := parseFields([]string{"topic=Climate change", "length=short", "note=a=b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"topic":  "Climate change",
		"length": "short",
		"note":   "a=b",
	}, values)

	values, err = parseFields([]string{"text=-"}, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", values["text"])

	_, err = parseFields([]string{"a=-", "b=-"}, strings.NewReader("x"))
	assert.Error(t, err)

	_, err = parseFields([]string{"novalue"}, nil)
	assert.Error(t, err)

	_, err = parseFields([]string{"=value"}, nil)
	assert.Error(t, err)
}

func TestTypewriter_PrintsOnlyNewText(t *testing.T) {
	var buf bytes.Buffer
	tw := newTypewriter(&buf)

	tw.update(reveal.Snapshot{Visible: "Hel"})
	tw.update(reveal.Snapshot{Visible: "Hello"})
	tw.update(reveal.Snapshot{Visible: "Hello"})
	tw.update(reveal.Snapshot{Visible: "Edited"})
	tw.update(reveal.Snapshot{Visible: "Hello world"})

	assert.Equal(t, "Hello world", buf.String())
}

func TestTypeOut_WithoutAnimation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, typeOut(context.Background(), &buf, "Title\n\nBody text.", false, 1))
	assert.Equal(t, "Title\n\nBody text.\n", buf.String())
}

func TestTypeOut_Animated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, typeOut(context.Background(), &buf, "Hi.", true, 50))
	assert.Equal(t, "Hi.\n", buf.String())
}

func TestTypeOut_CancelledContextFlushes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	require.NoError(t, typeOut(ctx, &buf, "A longer text that would take a while to type out.", true, 1))
	assert.Equal(t, "A longer text that would take a while to type out.\n", buf.String())
}

func TestFormatCommand_Plain(t *testing.T) {
	cmd := newFormatCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("## Essay Title\n\nIt is **important** to rest."))
	cmd.SetArgs([]string{"--plain"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Essay Title\n\nIt is important to rest.\n", out.String())
}

func TestFormatCommand_Rendered(t *testing.T) {
	cmd := newFormatCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("Essay Title\n\nSome body text."))
	cmd.SetArgs([]string{"--width", "60"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Essay Title")
	assert.Contains(t, out.String(), "Some body text")
}

func TestToolsCommand(t *testing.T) {
	cmd := newToolsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--category", "image"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "image-generator")
	assert.NotContains(t, out.String(), "essay-writer")

	out.Reset()
	cmd = newToolsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"summary-generator"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Summary Generator")
	assert.Contains(t, out.String(), "length")

	cmd = newToolsCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"nope"})
	assert.Error(t, cmd.Execute())
}
