package archive

import (
	"iter"
	"slices"
	"strings"

	"marcap/internal/model"
)

type filterKind uint8

const (
	filterNone filterKind = iota
	filterSingle
	filterMany
)

// CodeFilter selects records by security code. The zero value matches everything.
type CodeFilter struct {
	kind  filterKind
	code  string
	codes map[string]struct{}
}

// NoFilter matches every record.
func NoFilter() CodeFilter { return CodeFilter{} }

// Code matches one code exactly. An empty code is NoFilter.
func Code(code string) CodeFilter {
	if code == "" {
		return CodeFilter{}
	}
	return CodeFilter{kind: filterSingle, code: code}
}

// Codes matches any of codes. An empty list is NoFilter.
func Codes(codes ...string) CodeFilter {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	if len(set) == 0 {
		return CodeFilter{}
	}
	return CodeFilter{kind: filterMany, codes: set}
}

// FilterFrom converts a dynamically typed code value (string, list or set of codes).
// Unrecognized types yield NoFilter.
func FilterFrom(v any) CodeFilter {
	switch v := v.(type) {
	case CodeFilter:
		return v
	case string:
		return Code(v)
	case []string:
		return Codes(v...)
	case map[string]struct{}:
		codes := make([]string, 0, len(v))
		for c := range v {
			codes = append(codes, c)
		}
		return Codes(codes...)
	case map[string]bool:
		codes := make([]string, 0, len(v))
		for c, in := range v {
			if in {
				codes = append(codes, c)
			}
		}
		return Codes(codes...)
	default:
		return CodeFilter{}
	}
}

// Active reports whether f filters anything out.
func (f CodeFilter) Active() bool { return f.kind != filterNone }

// Match reports whether code passes f.
func (f CodeFilter) Match(code string) bool {
	switch f.kind {
	case filterSingle:
		return code == f.code
	case filterMany:
		_, ok := f.codes[code]
		return ok
	default:
		return true
	}
}

func (f CodeFilter) String() string {
	switch f.kind {
	case filterSingle:
		return f.code
	case filterMany:
		codes := make([]string, 0, len(f.codes))
		for c := range f.codes {
			codes = append(codes, c)
		}
		slices.Sort(codes)
		return "{" + strings.Join(codes, ",") + "}"
	default:
		return "*"
	}
}

// Batch is one chunk of consecutive records read from a year file.
type Batch []model.Record

// apply returns b unchanged when every record matches, otherwise a new batch
// holding the matching records in their original order.
func (f CodeFilter) apply(b Batch) Batch {
	if f.kind == filterNone {
		return b
	}
	i := 0
	for i < len(b) && f.Match(b[i].Code) {
		i++
	}
	if i == len(b) {
		return b
	}
	out := make(Batch, i, len(b)-1)
	copy(out, b[:i])
	for _, r := range b[i+1:] {
		if f.Match(r.Code) {
			out = append(out, r)
		}
	}
	return out
}

// filterChunks lazily filters each batch of chunks by f, preserving batch order.
// Source errors are forwarded once and end the sequence.
func filterChunks(chunks iter.Seq2[Batch, error], f CodeFilter) iter.Seq2[Batch, error] {
	if !f.Active() {
		return chunks
	}
	return func(yield func(Batch, error) bool) {
		for b, err := range chunks {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(f.apply(b), nil) {
				return
			}
		}
	}
}
