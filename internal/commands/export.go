package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/forest"
)

// flatHeader is the CSV header for exported flattened views.
var flatHeader = []string{"account_id", "parent_id", "account_name", "balance", "level", "is_leaf"}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var formatName string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the flattened view with rolled-up balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var write func(io.Writer, []forest.FlatRecord) error
			switch formatName {
			case "json":
				write = writeFlatJSON
			case "csv":
				write = writeFlatCSV
			default:
				return fmt.Errorf("unknown export format %q (want json or csv)", formatName)
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			flat := s.forest.Flatten()

			if output == "" || output == "-" {
				return write(cmd.OutOrStdout(), flat)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := write(f, flat); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			s.logger.Info("exported accounts", "path", output, "format", formatName, "rows", len(flat))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func writeFlatJSON(w io.Writer, flat []forest.FlatRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(flat); err != nil {
		return fmt.Errorf("encoding accounts: %w", err)
	}
	return nil
}

func writeFlatCSV(w io.Writer, flat []forest.FlatRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range flat {
		row := []string{
			r.ID.String(),
			r.ParentID.String(),
			r.Name,
			r.Value.String(),
			strconv.Itoa(r.Level),
			strconv.FormatBool(r.IsLeaf),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing account %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
