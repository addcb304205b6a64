package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"listeditor/internal/codec"
	"listeditor/internal/config"
	"listeditor/internal/domain"
	"listeditor/internal/layout"
	"listeditor/internal/linkedlist"
)

func newLayoutCmd() *cobra.Command {
	var (
		strategy string
		padding  float64
		columns  int
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Load a records document and print the laid-out list",
		Long: `Load a records document (JSON or YAML) into a list, lay it out and print
each node with its successor and canvas position. Reads stdin when no file
is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			records, err := readRecords(cmd.InOrStdin(), path, format)
			if err != nil {
				return err
			}

			pm, err := layout.New(strategy, layout.Options{Padding: padding, Columns: columns})
			if err != nil {
				return err
			}
			list, err := linkedlist.New(pm)
			if err != nil {
				return err
			}
			if err := list.SetNodesByJSON(records); err != nil {
				return err
			}

			if output == "table" {
				return printTable(cmd.OutOrStdout(), list.Nodes())
			}
			c, err := codec.ForFormat(output)
			if err != nil {
				return err
			}
			return c.Export(list.Records(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&strategy, "strategy", config.DefaultStrategy, "layout strategy (list, grid)")
	f.Float64Var(&padding, "padding", config.DefaultPadding, "margin between nodes")
	f.IntVar(&columns, "columns", config.DefaultColumns, "columns for the grid strategy")
	f.StringVar(&format, "format", "", "input format when reading stdin (json, yaml)")
	f.StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

// readRecords parses path, or r when path is "-"
func readRecords(r io.Reader, path, format string) ([]domain.Record, error) {
	var (
		c   codec.Codec
		err error
	)
	if path == "-" || format != "" {
		c, err = codec.ForFormat(format)
	} else {
		c, err = codec.ForPath(path)
	}
	if err != nil {
		return nil, err
	}

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return c.Parse(r)
}

func printTable(w io.Writer, nodes []domain.ListNode) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tVALUE\tNEXT\tX\tY")
	for i, n := range nodes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%.0f\n", i, n.ID, n.Value.Value, n.Next(), n.Position.X, n.Position.Y)
	}
	return tw.Flush()
}
