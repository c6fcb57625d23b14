package inspect

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// TokensCSV renders the token list to CSV with an optional header row.
func TokensCSV(res InspectResult, withHeader bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if withHeader {
		_ = w.Write([]string{"type", "value", "line", "column", "offset", "newlineBefore"})
	}

	for _, t := range res.Tokens {
		_ = w.Write([]string{
			t.Type,
			t.Value,
			strconv.Itoa(t.Line),
			strconv.Itoa(t.Column),
			strconv.Itoa(t.Offset),
			strconv.FormatBool(t.NewlineBefore),
		})
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}

// CountsCSV renders the node kind counts, sorted by kind.
func CountsCSV(res InspectResult, withHeader bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if withHeader {
		_ = w.Write([]string{"type", "count"})
	}

	for _, t := range sortedTypes(res.Counts) {
		_ = w.Write([]string{t, strconv.Itoa(res.Counts[t])})
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}
