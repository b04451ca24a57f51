package webapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	fs "github.com/ungerik/go-fs"

	"github.com/verisms/datatable"
	"github.com/verisms/datatable/csvtable"
	"github.com/verisms/datatable/exceltable"
	"github.com/verisms/datatable/sqltable"
)

// ActivationColumns returns the columns of the
// SMS activations table shown on the dashboard.
func ActivationColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "id", Title: "ID", Sortable: true},
		{Key: "number", Title: "Phone Number"},
		{Key: "service", Title: "Service", Sortable: true},
		{Key: "country", Title: "Country", Sortable: true},
		{
			Key:      "status",
			Title:    "Status",
			Sortable: true,
			Type:     datatable.ColumnTypeTagged,
			TagStyle: map[string]string{
				"active":    "green",
				"completed": "blue",
				"expired":   "yellow",
				"cancelled": "red",
				"default":   "gray",
			},
		},
		{Key: "price", Title: "Price", Sortable: true, Render: datatable.CellFormatterFunc(formatUSD)},
		{Key: "created_at", Title: "Created", Sortable: true, Type: datatable.ColumnTypeDate},
	}
}

func formatUSD(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
	switch v := cell.Value.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", v), false, nil
	case int64:
		return fmt.Sprintf("$%d.00", v), false, nil
	case int:
		return fmt.Sprintf("$%d.00", v), false, nil
	}
	return "", false, errors.ErrUnsupported
}

var sampleCountries = []struct {
	name   string
	prefix string
}{
	{"United States", "+1 202 555"},
	{"United Kingdom", "+44 7700 900"},
	{"Germany", "+49 151 2345"},
	{"India", "+91 98765 4"},
	{"Brazil", "+55 11 9876"},
	{"Indonesia", "+62 812 345"},
}

var (
	sampleServices = []string{"Telegram", "WhatsApp", "Google", "Facebook", "Uber", "Discord", "Amazon"}
	sampleStatuses = []string{"active", "completed", "completed", "expired", "cancelled"}
	samplePrices   = []float64{0.15, 0.25, 0.5, 0.35, 1.2, 0.8, 0.1}
)

// SampleActivations returns n deterministic activation rows
// matching ActivationColumns.
func SampleActivations(n int) []datatable.Row {
	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	rows := make([]datatable.Row, n)
	for i := range rows {
		country := sampleCountries[i%len(sampleCountries)]
		rows[i] = datatable.Row{
			"id":         1000 + i + 1,
			"number":     fmt.Sprintf("%s%03d", country.prefix, (i*37)%1000),
			"service":    sampleServices[(i*3)%len(sampleServices)],
			"country":    country.name,
			"status":     sampleStatuses[(i*2)%len(sampleStatuses)],
			"price":      samplePrices[i%len(samplePrices)],
			"created_at": start.Add(time.Duration(i) * 37 * time.Hour),
		}
	}
	return rows
}

// LoadTable returns the dashboard table of the config
// selected from config.Database, read from config.DataFile,
// or else SampleActivations.
//
// The database/sql driver of config.Database.Driver
// has to be registered by the caller.
func LoadTable(ctx context.Context, config *Config) (*datatable.RowsView, error) {
	if config.Database.DSN != "" {
		db, err := sql.Open(config.Database.Driver, config.Database.DSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqltable.ReadView(ctx, db, config.Title, config.Columns, config.Database.Query)
	}
	if config.DataFile == "" {
		return datatable.NewRowsView(config.Title, config.Columns, SampleActivations(42)), nil
	}
	file := fs.File(config.DataFile)
	switch strings.ToLower(filepath.Ext(config.DataFile)) {
	case ".xlsx", ".xlsm", ".xltm", ".xltx":
		return exceltable.ReadView(file, config.Title, config.Columns)
	}
	return csvtable.ReadView(file, config.Title, config.Columns)
}
