package sketch

import "testing"

func span(start, end int, depth uint8, keys ...string) SpanContext {
	return SpanContext{Span: Span{Start: start, End: end}, ContextDepth: depth, ParentKeys: keys}
}

func TestDedupSpans_RemovesExactDuplicates(t *testing.T) {
	in := []SpanContext{
		span(5, 6, 1, "a"),
		span(1, 2, 0),
		span(5, 6, 1, "a"),
	}
	got := DedupSpans(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 deduped spans, got %d: %+v", len(got), got)
	}
	if got[0].Span != (Span{1, 2}) {
		t.Fatalf("expected sort to put (1,2) first, got %+v", got[0])
	}
}

func TestDedupSpans_Idempotent(t *testing.T) {
	in := []SpanContext{span(3, 4, 0), span(1, 2, 0), span(3, 4, 0)}
	once := DedupSpans(append([]SpanContext(nil), in...))
	twice := DedupSpans(append([]SpanContext(nil), once...))
	if len(once) != len(twice) {
		t.Fatalf("dedup is not idempotent: %d vs %d", len(once), len(twice))
	}
}

func TestMergeAdjacentSingleCharSpans_CollapsesRun(t *testing.T) {
	in := []SpanContext{
		span(0, 1, 0, "a"),
		span(1, 2, 0, "a"),
		span(2, 3, 0, "a"),
	}
	// The first two 1-byte spans merge into 0:2; that span is two bytes wide,
	// so it is no longer eligible and 2:3 stays on its own.
	got := MergeAdjacentSingleCharSpans("xxx", in)
	if len(got) != 2 {
		t.Fatalf("expected two spans after merging the run, got %+v", got)
	}
	if got[0].Span != (Span{0, 2}) || got[1].Span != (Span{2, 3}) {
		t.Fatalf("expected spans 0:2 and 2:3, got %+v", got)
	}
}

func TestMergeAdjacentSingleCharSpans_RespectsContextBoundary(t *testing.T) {
	in := []SpanContext{
		span(0, 1, 0, "a"),
		span(1, 2, 1, "b"), // different context: must not merge
	}
	got := MergeAdjacentSingleCharSpans("xy", in)
	if len(got) != 2 {
		t.Fatalf("expected no merge across differing context, got %+v", got)
	}
}

func TestMergeAdjacentSingleCharSpans_DoesNotMergeWiderSpans(t *testing.T) {
	in := []SpanContext{
		span(0, 2, 0), // width 2, not eligible
		span(2, 3, 0),
	}
	got := MergeAdjacentSingleCharSpans("xyz", in)
	if len(got) != 2 {
		t.Fatalf("expected no merge when one span is wider than 1 byte, got %+v", got)
	}
}

func TestMergeAdjacentSingleCharSpans_Idempotent(t *testing.T) {
	in := []SpanContext{span(0, 1, 0), span(1, 2, 0), span(5, 6, 0)}
	once := MergeAdjacentSingleCharSpans("xxxxxx", in)
	twice := MergeAdjacentSingleCharSpans("xxxxxx", append([]SpanContext(nil), once...))
	if len(once) != len(twice) {
		t.Fatalf("merge is not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Span != twice[i].Span {
			t.Fatalf("merge is not idempotent at %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
