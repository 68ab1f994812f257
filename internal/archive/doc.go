// Package archive answers queries over a per-year market capitalization archive.
//
// The archive is a directory of year files named marcap-<year>.<ext>. Every call
// reopens the files it needs; nothing is cached. Two queries are provided:
//
//	frame, ok := a.LookupDate(day)                 // single-date snapshot, ranked
//	frame := a.LookupRange(start, end, RangeOptions{
//		Codes:     archive.Codes("005930", "000660"),
//		Streaming: true,
//	})
//
// Year files that cannot be read are skipped. LookupDate reports them as "no result";
// LookupRange leaves them out of the merged frame and logs the reason.
package archive
