package datatable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/domonda/go-types/date"
	"github.com/stretchr/testify/require"
)

func TestAsTime(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		value  any
		want   time.Time
		wantOK bool
	}{
		{name: "time", value: day, want: day, wantOK: true},
		{name: "time pointer", value: &day, want: day, wantOK: true},
		{name: "zero time", value: time.Time{}},
		{name: "date", value: date.Date("2025-01-06"), want: day, wantOK: true},
		{name: "ISO string", value: "2025-01-06", want: day, wantOK: true},
		{name: "empty string", value: ""},
		{name: "text", value: "tomorrow"},
		{name: "number", value: 20250106},
		{name: "nil", value: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsTime(tt.value)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				require.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestPrintfCellFormatter(t *testing.T) {
	ctx := context.Background()
	f := PrintfCellFormatter("%03d")

	str, raw, err := f.FormatCell(ctx, &Cell{Value: 7})
	require.NoError(t, err)
	require.False(t, raw)
	require.Equal(t, "007", str)

	seven := 7
	str, _, err = f.FormatCell(ctx, &Cell{Value: &seven})
	require.NoError(t, err)
	require.Equal(t, "007", str)

	_, _, err = f.FormatCell(ctx, &Cell{Value: nil})
	require.True(t, errors.Is(err, errors.ErrUnsupported))
}
