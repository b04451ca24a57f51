// tablecat prints a page of a CSV file as terminal table
// after filtering and sorting its rows.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	fs "github.com/ungerik/go-fs"

	"github.com/verisms/datatable"
	"github.com/verisms/datatable/csvtable"
	"github.com/verisms/datatable/internal/webapp"
	"github.com/verisms/datatable/texttable"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		search     string
		sortColumn string
		descending bool
		page       int
		pageSize   int
		configFile string
		verbose    bool
	)
	flags := pflag.NewFlagSet("tablecat", pflag.ContinueOnError)
	flags.StringVarP(&search, "search", "q", "", "only show rows containing this text")
	flags.StringVar(&sortColumn, "sort", "", "key of the column to sort by")
	flags.BoolVar(&descending, "desc", false, "sort descending")
	flags.IntVar(&page, "page", 1, "page to show")
	flags.IntVar(&pageSize, "page-size", 20, "rows per page, 0 shows all rows")
	flags.StringVar(&configFile, "config", "", "YAML file with the columns of the table")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log the detected CSV format")
	flags.BoolP("help", "h", false, "show help")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flags)
			return nil
		}
		return err
	}
	if help, _ := flags.GetBool("help"); help {
		printHelp(flags)
		return nil
	}
	if flags.NArg() != 1 {
		return errors.New("expected one CSV file argument")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	file := fs.File(flags.Arg(0))
	data, err := file.ReadAll()
	if err != nil {
		return err
	}
	rows, format, err := csvtable.ParseDetectFormat(data, nil)
	if err != nil {
		return fmt.Errorf("can't parse %s: %w", file.Name(), err)
	}
	logger.Debug("Detected CSV format",
		slog.String("encoding", format.Encoding),
		slog.String("separator", format.Separator),
		slog.Int("rows", len(rows)),
	)

	var columns []datatable.Column
	if configFile != "" {
		var config webapp.Config
		if err = config.ReadFile(fs.File(configFile)); err != nil {
			return err
		}
		columns = config.Columns
	}
	if len(columns) == 0 && len(rows) > 0 {
		columns = headerColumns(rows[0])
	}

	records, err := csvtable.AsRows(rows, columns)
	if err != nil {
		return fmt.Errorf("can't read %s: %w", file.Name(), err)
	}
	view := datatable.NewRowsView(file.Name(), columns, records)

	query := datatable.Query{
		Search:     search,
		Pagination: datatable.Pagination{Page: page, PageSize: pageSize},
	}
	if sortColumn != "" {
		query.Sort = datatable.SortState{Column: sortColumn}
		if descending {
			query.Sort.Direction = datatable.Descending
		}
	}

	out, err := texttable.NewRenderer().Render(context.Background(), datatable.Apply(view, query))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// headerColumns returns sortable text columns
// keyed by the fields of a CSV header row.
func headerColumns(header []string) []datatable.Column {
	columns := make([]datatable.Column, 0, len(header))
	for _, title := range header {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		columns = append(columns, datatable.Column{Key: title, Title: title, Sortable: true})
	}
	return columns
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tablecat prints a page of a CSV file as terminal table.

The encoding, separator, and line endings of the file are detected.
Without --config every header field becomes a sortable text column.

Usage:
  tablecat [flags] FILE

Examples:
  tablecat --sort price --desc activations.csv
  tablecat -q telegram --page 2 activations.csv

Flags:
`)
	flags.SetOutput(os.Stderr)
	flags.PrintDefaults()
}
