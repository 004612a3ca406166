package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/ai/format"
	"github.com/hrygo/cutverse/ai/generate"
	"github.com/hrygo/cutverse/ai/reveal"
	"github.com/hrygo/cutverse/ai/tools"
	"github.com/hrygo/cutverse/plugin/ads"
)

func newGenerateCmd() *cobra.Command {
	var (
		toolID     string
		fields     []string
		noReveal   bool
		saveTo     string
		imageWidth int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a tool and type its output into the terminal",
		Example: `  cutverse generate --tool essay-writer --field topic="Climate change" --field length=short
  cutverse generate --tool grammar-corrector --field text=- < draft.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := parseFields(fields, cmd.InOrStdin())
			if err != nil {
				return err
			}

			p, err := loadProfile()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := openStore(ctx, p)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if decision, err := ads.NewCounter(st, nil).Click(ctx); err == nil && decision.ShouldShowAd {
				fmt.Fprintln(cmd.ErrOrStderr(), adStyle.Render("Sponsored: "+decision.AdURL))
			}

			generator := generate.New(generate.ConfigFromProfile(p, st, nil))
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("Generating..."))
			output, err := generator.Generate(ctx, toolID, values)
			result := generate.NewResult(output.Text, err)
			if !result.OK() {
				return fmt.Errorf("%s", result.Error)
			}

			if output.Kind == tools.KindImage {
				if saveTo == "" {
					fmt.Fprintln(out, result.Output)
					return nil
				}
				if err := saveImage(ctx, result.Output, saveTo, imageWidth); err != nil {
					return err
				}
				fmt.Fprintln(out, "Saved image to "+saveTo)
				return nil
			}

			text := format.Format(result.Output).PlainText()
			animate := p.RevealEnabled && !noReveal && isTerminal(out)
			return typeOut(ctx, out, text, animate, p.RevealSpeed)
		},
	}
	cmd.Flags().StringVarP(&toolID, "tool", "t", "", "tool id (see `cutverse tools`)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field value as name=value; a value of - reads stdin")
	cmd.Flags().BoolVar(&noReveal, "no-reveal", false, "print the output at once")
	cmd.Flags().StringVarP(&saveTo, "save", "o", "", "image tools: save the image to this file (format from extension)")
	cmd.Flags().IntVar(&imageWidth, "width", 0, "image tools: scale the saved image down to this width")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

// typeOut reveals text on out. Interrupting skips to the full text.
func typeOut(ctx context.Context, out io.Writer, text string, animate bool, speed float64) error {
	tw := newTypewriter(out)
	pace := reveal.DefaultPaceConfig()
	pace.Speed = speed
	session := reveal.NewSession(
		reveal.WithListener(tw.update),
		reveal.WithReveal(animate),
		reveal.WithPacer(reveal.NewPacer(pace, nil)),
	)
	defer session.Close()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, terminationSignals...)
	defer signal.Stop(interrupts)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-interrupts:
			session.Flush()
		case <-done:
		}
	}()

	session.NewContent(text)
	if err := session.Wait(ctx); err != nil {
		session.Flush()
	}
	fmt.Fprintln(out)
	return nil
}

// parseFields turns name=value pairs into form values.
func parseFields(pairs []string, stdin io.Reader) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	stdinUsed := false
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", pair)
		}
		if value == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("only one field can read stdin")
			}
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			value = string(b)
			stdinUsed = true
		}
		values[name] = value
	}
	return values, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
