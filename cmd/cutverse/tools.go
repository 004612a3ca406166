package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrygo/cutverse/ai/tools"
)

func newToolsCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tools [id]",
		Short: "List the available tools, or show the fields of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := tools.Default()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				tool, ok := catalog.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown tool %q", args[0])
				}
				fmt.Fprintln(out, describeTool(tool))
				return nil
			}

			categories := tools.Categories
			if category != "" {
				categories = []tools.Category{tools.Category(category)}
			}
			for _, c := range categories {
				list := catalog.ByCategory(c)
				if len(list) == 0 {
					continue
				}
				fmt.Fprintln(out, categoryStyle.Render(strings.ToUpper(string(c))))
				for _, t := range list {
					line := "  " + idStyle.Render(fmt.Sprintf("%-22s", t.ID)) + " " + t.Description
					if !t.Supported() {
						line += dimStyle.Render(" (unavailable)")
					}
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")
	return cmd
}

func describeTool(t *tools.Tool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	b.WriteString("\n" + t.Description + "\n\n")
	for _, f := range t.Fields {
		b.WriteString("  " + idStyle.Render(f.Name))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", f.Type)))
		if f.Required {
			b.WriteString(" required")
		}
		b.WriteString("  " + f.Label + "\n")
		for _, o := range f.Options {
			b.WriteString(dimStyle.Render(fmt.Sprintf("      %s  %s", o.Value, o.Label)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
