// Package report renders a classification for the operator.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/measurement"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Report is one classified package
type Report struct {
	RequestID    string                   `json:"request_id"`
	Measurements measurement.Measurements `json:"measurements"`
	classifier.Decision
}

// Write renders r to w in the given format
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatText:
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

func writeText(w io.Writer, r Report) error {
	m := r.Measurements
	_, err := fmt.Fprintf(w,
		"\nLength: %s cm \nWidth: %s cm \nHeight: %s cm \nMass: %s kg\nThe package is classified as: %s\n",
		FormatReading(m.Length), FormatReading(m.Width), FormatReading(m.Height), FormatReading(m.Mass), r.Category)
	return err
}

// FormatReading prints v with the fewest digits that round-trip, always
// keeping a decimal point ("10.0"). Exponent form is used below 1e-4 and from
// 1e16 on ("1e+16", "1e-05").
func FormatReading(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
