package sketch

import (
	"sort"
	"strings"
)

func parentKeyString(keys []string) string {
	return strings.Join(keys, "\x1d")
}

// DedupSpans sorts spans by (start, end, context_depth, parent_keys) and
// removes exact duplicates in place, returning the deduplicated slice.
func DedupSpans(spans []SpanContext) []SpanContext {
	if len(spans) < 2 {
		return spans
	}
	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		if a.ContextDepth != b.ContextDepth {
			return a.ContextDepth < b.ContextDepth
		}
		return parentKeyString(a.ParentKeys) < parentKeyString(b.ParentKeys)
	})

	out := spans[:1]
	for _, cur := range spans[1:] {
		prev := out[len(out)-1]
		if cur.Span == prev.Span && cur.ContextDepth == prev.ContextDepth &&
			parentKeyString(cur.ParentKeys) == parentKeyString(prev.ParentKeys) {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// MergeAdjacentSingleCharSpans repeatedly collapses pairs of adjacent,
// single-byte spans sharing (context_depth, parent_keys) into one wider
// span, to a fixed point. input is accepted for parity with the original
// signature (callers may want it for future snippet-aware merging) but is
// not consulted by the merge rule itself.
func MergeAdjacentSingleCharSpans(input string, spans []SpanContext) []SpanContext {
	_ = input
	spans = DedupSpans(spans)
	for {
		merged, changed := mergeOnePass(spans)
		spans = merged
		if !changed {
			return spans
		}
	}
}

func mergeOnePass(spans []SpanContext) ([]SpanContext, bool) {
	if len(spans) < 2 {
		return spans, false
	}
	out := make([]SpanContext, 0, len(spans))
	changed := false
	i := 0
	for i < len(spans) {
		cur := spans[i]
		if i+1 < len(spans) {
			next := spans[i+1]
			if cur.Span.Len() == 1 && next.Span.Len() == 1 &&
				cur.Span.End == next.Span.Start &&
				cur.ContextDepth == next.ContextDepth &&
				parentKeyString(cur.ParentKeys) == parentKeyString(next.ParentKeys) {
				out = append(out, SpanContext{
					Span:         Span{Start: cur.Span.Start, End: next.Span.End},
					ContextDepth: cur.ContextDepth,
					ParentKeys:   cur.ParentKeys,
				})
				i += 2
				changed = true
				continue
			}
		}
		out = append(out, cur)
		i++
	}
	return out, changed
}
