package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat parses CSV data with automatic format detection.
// It analyzes the raw bytes to determine encoding, separator, and line endings,
// then parses the data into rows of string fields.
//
// Format Detection Algorithm:
//  1. Encoding Detection: Tests configured encodings against test strings to find
//     the encoding that correctly decodes special characters
//  2. Line Ending Detection: Prefers \r\n if present, otherwise uses \n
//  3. Separator Detection: a "sep=X" header line declares the separator,
//     otherwise the most frequent of comma, semicolon, and tab is used
//
// If config is nil, NewDefaultFormatDetectionConfig() is used.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}

	format = new(Format)
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(charset.TrimBOM(data, charset.BOMUTF8))

	if bytes.Contains(data, []byte{'\r', '\n'}) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	data, format.Separator = detectSeparator(data, format.Newline)
	rows, err = readRecords(data, format.Separator)
	return rows, format, err
}

// ParseWithFormat parses CSV data using an explicitly specified format.
// A "sep=X" header line is removed if X matches format.Separator.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	err = format.Validate()
	if err != nil {
		return nil, err
	}

	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	firstLine, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if headerSep := parseSepHeaderLine(firstLine); headerSep != "" {
		if headerSep != format.Separator {
			return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", headerSep, format.Separator)
		}
		data = rest
	}

	return readRecords(data, format.Separator)
}

// detectSeparator returns the data without a "sep=X" header line
// and the declared or most frequent separator.
// Ties default to comma.
func detectSeparator(data []byte, newline string) ([]byte, string) {
	firstLine, rest, _ := bytes.Cut(data, []byte(newline))
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		return rest, sep
	}

	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return data, ";"
	case tabs > commas && tabs > semicolons:
		return data, "\t"
	default:
		return data, ","
	}
}

// parseSepHeaderLine returns X for lines like sep=X
// or "sep=X" (case-insensitive SEP), else an empty string.
func parseSepHeaderLine(line []byte) string {
	line = bytes.Trim(bytes.TrimSpace(line), `"`)
	if len(line) != 5 || !bytes.EqualFold(line[:4], []byte("sep=")) {
		return ""
	}
	return string(line[4:])
}

func readRecords(data []byte, separator string) (rows [][]string, err error) {
	sep, _ := utf8.DecodeRuneInString(separator)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
}

// RemoveEmptyRows removes rows where all fields are empty strings.
func RemoveEmptyRows(rows [][]string) [][]string {
	result := rows[:0]
	for _, row := range rows {
		if !isEmptyRow(row) {
			result = append(result, row)
		}
	}
	return result
}

func isEmptyRow(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}
