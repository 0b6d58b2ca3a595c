package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/forest"
	"github.com/cleared-dev/ledgerview/internal/format"
	"github.com/cleared-dev/ledgerview/internal/model"
)

func newTableCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the flattened account hierarchy as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), s.forest.Flatten())
			return nil
		},
	}
}

func renderTable(w io.Writer, flat []forest.FlatRecord) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Account", "Balance", "Type"})
	tbl.SetAutoWrapText(false)
	tbl.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, r := range flat {
		kind := "Group"
		if r.IsLeaf {
			kind = "Detail"
		}
		tbl.Append([]string{
			strings.Repeat("  ", r.Level) + r.Name,
			format.Currency(r.Value),
			kind,
		})
	}
	summary := forest.Summarize(flat)
	tbl.SetFooter([]string{"Total", format.Currency(summary.Total), ""})
	tbl.Render()
}

func newTreeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the account hierarchy with rolled-up balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTree(cmd.OutOrStdout(), s.forest.BuildTree()))
			return nil
		},
	}
}

// renderTree draws the nested view. Group labels are bold when w is a terminal.
func renderTree(w io.Writer, roots []forest.ViewNode) string {
	groupStyle := lipgloss.NewRenderer(w).NewStyle().Bold(true)

	var build func(v forest.ViewNode) any
	build = func(v forest.ViewNode) any {
		label := fmt.Sprintf("%s (%s)", v.Name, format.Currency(v.Value))
		if len(v.Children) == 0 {
			return label
		}
		t := tree.New().Root(groupStyle.Render(label))
		for _, c := range v.Children {
			t.Child(build(c))
		}
		return t
	}

	t := tree.New()
	for _, r := range roots {
		t.Child(build(r))
	}
	return t.String()
}

func newPathCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path <account-id>",
		Short: "Print the ancestor chain of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			id := model.AccountID(args[0])
			if _, ok := s.forest.FindNode(id); !ok {
				return fmt.Errorf("account %q not found", id)
			}

			var path []*forest.Node
			if s.cfg.Source.Strict {
				if path, err = s.forest.StrictPath(id); err != nil {
					return err
				}
			} else {
				path = s.forest.Path(id)
			}

			names := make([]string, len(path))
			for i, n := range path {
				names[i] = n.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " > "))
			return nil
		},
	}
}

func newTreemapCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "treemap",
		Short: "Print the accounts regrouped by name path as treemap JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(s.forest.Treemap()); err != nil {
				return fmt.Errorf("encoding treemap: %w", err)
			}
			return nil
		},
	}
}
