package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/ai/format"
)

func newFormatCmd() *cobra.Command {
	var (
		plain bool
		width int
	)
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format model output for the terminal",
		Long:  "Reads raw model output from file, or stdin when no file is given, and renders the formatted document.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			doc := format.Format(string(raw))
			if plain {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), doc.PlainText())
				return err
			}
			rendered, err := renderMarkdown(doc.Markdown(), width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print plain text without styling")
	cmd.Flags().IntVar(&width, "width", 0, "word wrap width (0 = 80)")
	return cmd
}

// renderMarkdown styles markdown for the terminal.
func renderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return renderer.Render(md)
}
