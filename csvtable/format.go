package csvtable

import (
	"errors"
	"fmt"
)

// Format of CSV data as detected by ParseDetectFormat
// or written by a Writer.
type Format struct {
	// Encoding is a charset name like "UTF-8" or "Windows 1252"
	Encoding string `yaml:"encoding"`
	// Separator is a single byte field delimiter
	Separator string `yaml:"separator"`
	// Newline is "\n" or "\r\n"
	Newline string `yaml:"newline"`
}

// NewFormat returns a UTF-8 Format with "\r\n" line endings.
func NewFormat(separator string) *Format {
	return &Format{Encoding: "UTF-8", Separator: separator, Newline: "\r\n"}
}

// Validate returns an error if the Format can't be used for parsing.
func (f *Format) Validate() error {
	if f == nil {
		return errors.New("nil csvtable.Format")
	}
	if f.Encoding == "" {
		return errors.New("csvtable.Format has no Encoding")
	}
	if len(f.Separator) != 1 {
		return fmt.Errorf("csvtable.Format.Separator must be one byte, got %q", f.Separator)
	}
	if f.Newline != "\n" && f.Newline != "\r\n" {
		return fmt.Errorf("csvtable.Format.Newline must be \\n or \\r\\n, got %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig lists the candidate encodings
// for ParseDetectFormat.
type FormatDetectionConfig struct {
	// Encodings in priority order
	Encodings []string `yaml:"encodings"`
	// EncodingTests are characters that decode to
	// different bytes in the candidate encodings.
	// The first encoding producing one of them wins.
	EncodingTests []string `yaml:"encoding_tests"`
}

func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings:     []string{"UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252"},
		EncodingTests: []string{"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "€", "é", "ñ"},
	}
}
