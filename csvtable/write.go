package csvtable

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/verisms/datatable"
)

// TextTransformer encodes the UTF-8 bytes of a written row,
// for example into another character set.
type TextTransformer interface {
	Bytes([]byte) ([]byte, error)
}

// Writer writes datatable results as CSV.
//
// Writer is immutable, all With* methods
// return a modified copy.
type Writer struct {
	formatters       datatable.TypeFormatters
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	delimiter        rune
	newLine          string
	encoder          TextTransformer
}

// NewWriter returns a Writer with ';' as delimiter,
// "\r\n" line endings, and datatable.DefaultTypeFormatters.
func NewWriter() *Writer {
	return &Writer{
		formatters:   datatable.DefaultTypeFormatters(),
		delimiter:    ';',
		escapeQuotes: `""`,
		newLine:      "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

func (w *Writer) WithTypeFormatters(formatters datatable.TypeFormatters) *Writer {
	mod := w.clone()
	mod.formatters = formatters
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer) WithEncoder(encoder TextTransformer) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

// Format returns the Format of the written CSV.
func (w *Writer) Format() *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: string(w.delimiter),
		Newline:   w.newLine,
	}
}

// WriteResult writes the rows of the result's page
// with the column titles as optional header row.
// Cells are formatted like for the text form of a table,
// raw HTML formatters are not used.
func (w *Writer) WriteResult(ctx context.Context, dest io.Writer, result *datatable.Result, writeHeaderRow bool) error {
	rows, err := datatable.FormatResultAsStrings(ctx, result, w.formatters, writeHeaderRow)
	if err != nil {
		return err
	}
	var (
		rowBuf         = bytes.NewBuffer(make([]byte, 0, 1024))
		mustQuoteChars = "\n\"" + string(w.delimiter)
	)
	for _, row := range rows {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = w.writeRow(dest, rowBuf, row, mustQuoteChars); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(dest io.Writer, rowBuf *bytes.Buffer, fields []string, mustQuoteChars string) (err error) {
	for col, str := range fields {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		// \n alone is valid within quotes
		str = strings.ReplaceAll(str, "\r", "")
		switch {
		case w.quoteAllFields || strings.ContainsAny(str, mustQuoteChars):
			rowBuf.WriteByte('"')
			rowBuf.WriteString(strings.ReplaceAll(str, `"`, w.escapeQuotes))
			rowBuf.WriteByte('"')
		case w.quoteEmptyFields && str == "":
			rowBuf.WriteString(`""`)
		default:
			rowBuf.WriteString(str)
		}
	}
	rowBuf.WriteString(w.newLine)
	rowBytes := rowBuf.Bytes()
	rowBuf.Reset()
	if w.encoder != nil {
		rowBytes, err = w.encoder.Bytes(rowBytes)
		if err != nil {
			return err
		}
	}
	_, err = dest.Write(rowBytes)
	return err
}
