package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

var inspectFlags struct {
	tags    []string
	maxSize int64
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Parse documents and print their value trees",
	Long: `Parse one or more documents with the generic value parser and print
the resulting trees back in the game's own syntax.

Scalars are shown as classified: numbers normalised, dates canonical,
yes/no as booleans, and blocks keyed by a date shown as events.

Examples:
  # Print a whole document
  chronicle inspect history/titles/k_england.txt

  # Only the top-level entries named d_york and d_lancaster
  chronicle inspect common/landed_titles/titles.txt --tag d_york --tag d_lancaster`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringSliceVarP(&inspectFlags.tags, "tag", "t", nil, "only print top-level entries with this tag (repeatable)")
	inspectCmd.Flags().Int64Var(&inspectFlags.maxSize, "max-size", parser.DefaultMaxFileSize, "largest document accepted, in bytes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	p := parser.NewParser().WithMaxFileSize(inspectFlags.maxSize)
	out := cmd.OutOrStdout()

	for i, path := range args {
		doc, err := p.ParseFile(path)
		if err != nil {
			return cli.NewCommandError("inspect", err)
		}
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", path)
		}
		if err := parser.Format(out, selectTags(doc.Values, inspectFlags.tags)...); err != nil {
			return cli.NewCommandError("inspect", err)
		}
	}
	return nil
}

// selectTags keeps the values whose tag is in tags, or all of them when tags
// is empty.
func selectTags(values []ast.Value, tags []string) []ast.Value {
	if len(tags) == 0 {
		return values
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []ast.Value
	for _, v := range values {
		if want[v.Tag()] {
			out = append(out, v)
		}
	}
	return out
}
