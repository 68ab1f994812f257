package model

import (
	"math"
	"time"
)

// Record is one security on one trading date.
// Shared by yearfile readers, archive lookups and savers (parquet tags use the on-disk names).
type Record struct {
	Date          time.Time `json:"Date" parquet:"Date,timestamp"`
	Code          string    `json:"Code" parquet:"Code"` // zero-padded, never numeric
	Name          string    `json:"Name" parquet:"Name"`
	Open          float64   `json:"Open" parquet:"Open"`
	High          float64   `json:"High" parquet:"High"`
	Low           float64   `json:"Low" parquet:"Low"`
	Close         float64   `json:"Close" parquet:"Close"`
	Volume        int64     `json:"Volume" parquet:"Volume"`
	Amount        int64     `json:"Amount" parquet:"Amount"`
	Changes       float64   `json:"Changes" parquet:"Changes"`
	ChangesRatio  float64   `json:"ChangesRatio" parquet:"ChagesRatio"`
	Marcap        int64     `json:"Marcap" parquet:"Marcap"`
	Stocks        int64     `json:"Stocks" parquet:"Stocks"`
	MarcapRatio   float64   `json:"MarcapRatio" parquet:"MarcapRatio"`
	ForeignShares int64     `json:"ForeignShares" parquet:"ForeignShares"`
	ForeignRatio  float64   `json:"ForeignRatio" parquet:"ForeignRatio"`
	Rank          int64     `json:"Rank" parquet:"Rank"` // 0 when missing

	// Extra holds stored columns beyond the fixed schema, keyed by header name.
	Extra map[string]string `json:"Extra,omitempty" parquet:"-"`
}

// Before reports whether r sorts before o by (Date, Rank).
// Records without a rank sort after ranked records of the same date.
func (r Record) Before(o Record) bool {
	if !r.Date.Equal(o.Date) {
		return r.Date.Before(o.Date)
	}
	return rankKey(r.Rank) < rankKey(o.Rank)
}

// rankKey maps a missing rank (ranks start at 1) past every real rank.
func rankKey(rank int64) int64 {
	if rank <= 0 {
		return math.MaxInt64
	}
	return rank
}

// Compare orders records by (Date, Rank). For slices.SortStableFunc.
func Compare(a, b Record) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}
