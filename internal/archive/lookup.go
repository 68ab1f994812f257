package archive

import (
	"slices"
	"time"

	"marcap/internal/model"
)

// LookupDate returns the ranked snapshot of one calendar date projected to model.DateColumns.
// ok is false when the year file cannot be loaded for any reason; a readable file
// without rows for the date gives an empty frame with ok true.
func (a *Archive) LookupDate(date time.Time) (frame model.Frame, ok bool) {
	day := model.Day(date)
	records, _, err := a.readAll(day.Year())
	if err != nil {
		a.log.Debug("date lookup: no result", "date", day.Format(model.DateLayout), "path", a.YearPath(day.Year()), "error", err)
		return model.Frame{}, false
	}

	out := make([]model.Record, 0)
	for _, r := range records {
		if r.Date.Equal(day) {
			r.Extra = nil
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, model.Compare)
	return model.Frame{Columns: slices.Clone(model.DateColumns), Records: out}, true
}

// RangeOptions configures LookupRange.
type RangeOptions struct {
	Codes     CodeFilter
	Streaming bool // read year files in batches of ChunkSize records
	ChunkSize int  // <= 0 means DefaultChunkSize
}

func (o RangeOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// LookupRange returns all records with start <= Date <= end (calendar dates, both inclusive)
// that pass opts.Codes, sorted by (Date, Rank). Columns are model.RangeColumns followed by
// any other columns the loaded year files store, in stored order.
// Years whose file cannot be loaded are skipped; if every year fails the frame is empty.
// start after end gives an empty frame without touching the archive.
func (a *Archive) LookupRange(start, end time.Time, opts RangeOptions) model.Frame {
	start, end = model.Day(start), model.Day(end)
	frame := model.Frame{Columns: slices.Clone(model.RangeColumns), Records: []model.Record{}}
	if start.After(end) {
		a.log.Debug("range lookup: empty range", "start", start.Format(model.DateLayout), "end", end.Format(model.DateLayout))
		return frame
	}

	var merged []model.Record
	var loaded, skipped int
	for year := start.Year(); year <= end.Year(); year++ {
		res := a.loadYear(year, start, end, opts)
		if res.Skipped() {
			skipped++
			a.log.Warn("range lookup: skip year", "year", res.Year, "path", res.Path, "error", res.Err)
			continue
		}
		loaded++
		frame.Columns = model.MergeColumns(frame.Columns, res.Extra)
		merged = append(merged, res.Records...)
	}

	merged = slices.DeleteFunc(merged, func(r model.Record) bool {
		return !inRange(r.Date, start, end)
	})
	slices.SortStableFunc(merged, model.Compare)
	if merged != nil {
		frame.Records = merged
	}
	a.log.Debug("range lookup",
		"start", start.Format(model.DateLayout),
		"end", end.Format(model.DateLayout),
		"codes", opts.Codes.String(),
		"streaming", opts.Streaming,
		"years_loaded", loaded,
		"years_skipped", skipped,
		"records", len(frame.Records))
	return frame
}

// loadYear reads one year filtered by opts.Codes. In streaming mode each batch is
// also clipped to [start, end] as it arrives. A read error anywhere drops the whole year.
func (a *Archive) loadYear(year int, start, end time.Time, opts RangeOptions) yearResult {
	res := yearResult{Year: year, Path: a.YearPath(year)}
	if !opts.Streaming {
		records, extra, err := a.readAll(year)
		if err != nil {
			res.Err = err
			return res
		}
		res.Records, res.Extra = opts.Codes.apply(records), extra
		return res
	}

	for b, err := range filterChunks(a.chunksExtra(year, opts.chunkSize(), &res.Extra), opts.Codes) {
		if err != nil {
			res.Records, res.Extra, res.Err = nil, nil, err
			return res
		}
		for _, r := range b {
			if inRange(r.Date, start, end) {
				res.Records = append(res.Records, r)
			}
		}
	}
	return res
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
