package model

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Column names as stored in year files. ChagesRatio is misspelled on disk.
const (
	ColDate          = "Date"
	ColCode          = "Code"
	ColName          = "Name"
	ColOpen          = "Open"
	ColHigh          = "High"
	ColLow           = "Low"
	ColClose         = "Close"
	ColVolume        = "Volume"
	ColAmount        = "Amount"
	ColChanges       = "Changes"
	ColChagesRatio   = "ChagesRatio"
	ColChangesRatio  = "ChangesRatio"
	ColMarcap        = "Marcap"
	ColStocks        = "Stocks"
	ColMarcapRatio   = "MarcapRatio"
	ColForeignShares = "ForeignShares"
	ColForeignRatio  = "ForeignRatio"
	ColRank          = "Rank"
)

// DateColumns is the projection returned by a single-date lookup (on-disk spelling).
var DateColumns = []string{
	ColDate, ColCode, ColName,
	ColOpen, ColHigh, ColLow, ColClose, ColVolume, ColAmount,
	ColChanges, ColChagesRatio, ColMarcap, ColStocks, ColMarcapRatio,
	ColForeignShares, ColForeignRatio, ColRank,
}

// RangeColumns is DateColumns with the delta-ratio column renamed.
var RangeColumns = []string{
	ColDate, ColCode, ColName,
	ColOpen, ColHigh, ColLow, ColClose, ColVolume, ColAmount,
	ColChanges, ColChangesRatio, ColMarcap, ColStocks, ColMarcapRatio,
	ColForeignShares, ColForeignRatio, ColRank,
}

// DateLayout is the calendar date format used in year files and output.
const DateLayout = "2006-01-02"

// Frame is an ordered query result. Records are contiguous and 0-indexed.
// Columns may extend the fixed lists with extra stored columns held in Record.Extra.
type Frame struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (f Frame) Len() int { return len(f.Records) }

// Value formats column col of r as text.
// Columns outside the fixed schema come from r.Extra; absent ones are empty.
func Value(r Record, col string) string {
	switch col {
	case ColDate:
		return r.Date.Format(DateLayout)
	case ColCode:
		return r.Code
	case ColName:
		return r.Name
	case ColOpen:
		return floatStr(r.Open)
	case ColHigh:
		return floatStr(r.High)
	case ColLow:
		return floatStr(r.Low)
	case ColClose:
		return floatStr(r.Close)
	case ColVolume:
		return strconv.FormatInt(r.Volume, 10)
	case ColAmount:
		return strconv.FormatInt(r.Amount, 10)
	case ColChanges:
		return floatStr(r.Changes)
	case ColChagesRatio, ColChangesRatio:
		return floatStr(r.ChangesRatio)
	case ColMarcap:
		return strconv.FormatInt(r.Marcap, 10)
	case ColStocks:
		return strconv.FormatInt(r.Stocks, 10)
	case ColMarcapRatio:
		return floatStr(r.MarcapRatio)
	case ColForeignShares:
		return strconv.FormatInt(r.ForeignShares, 10)
	case ColForeignRatio:
		return floatStr(r.ForeignRatio)
	case ColRank:
		return strconv.FormatInt(r.Rank, 10)
	default:
		return r.Extra[col]
	}
}

// Row formats r as text in the order of cols.
func Row(r Record, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = Value(r, c)
	}
	return out
}

// Known reports whether col belongs to the fixed schema (either delta-ratio spelling).
func Known(col string) bool {
	return col == ColChangesRatio || slices.Contains(DateColumns, col)
}

// MergeColumns appends to dst each column of src not already present, keeping src order.
func MergeColumns(dst, src []string) []string {
	for _, c := range src {
		if !slices.Contains(dst, c) {
			dst = append(dst, c)
		}
	}
	return dst
}

// Day truncates t to its calendar date at UTC midnight.
// The year, month and day are taken in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var dateLayouts = []string{
	DateLayout,
	"20060102",
	"2006/01/02",
	"2006.01.02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses s in any of the accepted date layouts and returns its calendar date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", s)
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
