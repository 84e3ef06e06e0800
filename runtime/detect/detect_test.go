package detect

import (
	"testing"

	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

func findKind(results []sketch.Sketch, k sketch.Kind) *sketch.Sketch {
	for i := range results {
		if results[i].Kind == k {
			return &results[i]
		}
	}
	return nil
}

func TestScan_TrailingComma(t *testing.T) {
	got := Scan(`{"a": 1,}`)
	if findKind(got, sketch.TrailingComma) == nil {
		t.Fatalf("expected TrailingComma, got %+v", got)
	}
}

func TestScan_LeadingComma(t *testing.T) {
	got := Scan(`[,1,2]`)
	if findKind(got, sketch.LeadingComma) == nil {
		t.Fatalf("expected LeadingComma, got %+v", got)
	}
}

func TestScan_DoubleComma(t *testing.T) {
	got := Scan(`[1,,2]`)
	if findKind(got, sketch.DoubleComma) == nil {
		t.Fatalf("expected DoubleComma, got %+v", got)
	}
}

func TestScan_ExtraOrMissingColon_Missing(t *testing.T) {
	got := Scan(`{"a" 1}`)
	s := findKind(got, sketch.ExtraOrMissingColon)
	if s == nil {
		t.Fatalf("expected ExtraOrMissingColon, got %+v", got)
	}
}

func TestScan_ExtraOrMissingColon_Extra(t *testing.T) {
	got := Scan(`{"a": : 1}`)
	if findKind(got, sketch.ExtraOrMissingColon) == nil {
		t.Fatalf("expected ExtraOrMissingColon for doubled colon, got %+v", got)
	}
}

func TestScan_DuplicateKey(t *testing.T) {
	got := Scan(`{"a": 1, "a": 2}`)
	s := findKind(got, sketch.DuplicateKey)
	if s == nil {
		t.Fatalf("expected DuplicateKey, got %+v", got)
	}
	if s.Payload.Kind() != sketch.PayloadSpans {
		t.Fatalf("expected DuplicateKey to carry Spans payload per original source, got %v", s.Payload.Kind())
	}
}

func TestScan_EmptyKeyOrValue_EmptyKey(t *testing.T) {
	got := Scan(`{"": 1}`)
	if findKind(got, sketch.EmptyKeyOrValue) == nil {
		t.Fatalf("expected EmptyKeyOrValue for empty key, got %+v", got)
	}
}

func TestScan_EmptyKeyOrValue_EmptyValue(t *testing.T) {
	got := Scan(`{"a": }`)
	if findKind(got, sketch.EmptyKeyOrValue) == nil {
		t.Fatalf("expected EmptyKeyOrValue for empty value, got %+v", got)
	}
}

func TestScan_UnbalancedBracketAndImproperNesting(t *testing.T) {
	got := Scan(`{"a": 1]`)
	if findKind(got, sketch.UnbalancedBracket) == nil {
		t.Fatalf("expected UnbalancedBracket, got %+v", got)
	}
	if findKind(got, sketch.ImproperNesting) == nil {
		t.Fatalf("expected ImproperNesting, got %+v", got)
	}
}

func TestScan_CommentInJSON(t *testing.T) {
	got := Scan("{\"a\": 1} // trailing\n")
	if findKind(got, sketch.CommentInJSON) == nil {
		t.Fatalf("expected CommentInJSON, got %+v", got)
	}
}

func TestScan_ExcessWhitespace_TrailingSpaces(t *testing.T) {
	got := Scan("{\"a\": 1}   \n")
	if findKind(got, sketch.ExcessWhitespaceOrNewline) == nil {
		t.Fatalf("expected ExcessWhitespaceOrNewline, got %+v", got)
	}
}

func TestScan_UnescapedQuote(t *testing.T) {
	got := Scan(`{"a": 1"}`)
	if findKind(got, sketch.UnescapedQuote) == nil {
		t.Fatalf("expected UnescapedQuote, got %+v", got)
	}
}

func TestScan_InvalidEscapeSequence(t *testing.T) {
	got := Scan(`{"a": "\q"}`)
	if findKind(got, sketch.InvalidEscapeSequence) == nil {
		t.Fatalf("expected InvalidEscapeSequence, got %+v", got)
	}
}

func TestScan_ImproperEncoding(t *testing.T) {
	got := Scan(`{"a": "\uD800"}`)
	if findKind(got, sketch.ImproperEncoding) == nil {
		t.Fatalf("expected ImproperEncoding for lone surrogate, got %+v", got)
	}
}

func TestScan_InvalidNumberFormat_LeadingZero(t *testing.T) {
	got := Scan(`{"a": 007}`)
	if findKind(got, sketch.InvalidNumberFormat) == nil {
		t.Fatalf("expected InvalidNumberFormat for leading zero, got %+v", got)
	}
}

func TestScan_OverlyLargeNumber(t *testing.T) {
	got := Scan(`{"a": 1234567890123456}`)
	if findKind(got, sketch.OverlyLargeNumber) == nil {
		t.Fatalf("expected OverlyLargeNumber, got %+v", got)
	}
}

func TestScan_IncorrectBooleanLiteral(t *testing.T) {
	got := Scan(`{"a": True}`)
	if findKind(got, sketch.IncorrectBooleanLiteral) == nil {
		t.Fatalf("expected IncorrectBooleanLiteral, got %+v", got)
	}
}

func TestScan_NullOrNoneLiteral_None(t *testing.T) {
	got := Scan(`{"a": None}`)
	if findKind(got, sketch.NullOrNoneLiteral) == nil {
		t.Fatalf("expected NullOrNoneLiteral for None, got %+v", got)
	}
}

func TestScan_NullOrNoneLiteral_BadNull(t *testing.T) {
	got := Scan(`{"a": NULL}`)
	if findKind(got, sketch.NullOrNoneLiteral) == nil {
		t.Fatalf("expected NullOrNoneLiteral for NULL, got %+v", got)
	}
}

func TestScan_MixedTypeInArray(t *testing.T) {
	got := Scan(`[1, "two", 3]`)
	if findKind(got, sketch.MixedTypeInArray) == nil {
		t.Fatalf("expected MixedTypeInArray, got %+v", got)
	}
}

func TestScan_MixedTypeInArray_Uniform(t *testing.T) {
	got := Scan(`[1, 2, 3]`)
	if findKind(got, sketch.MixedTypeInArray) != nil {
		t.Fatalf("did not expect MixedTypeInArray for a uniform array, got %+v", got)
	}
}

func TestScan_CircularReference(t *testing.T) {
	got := Scan(`{"a": {"$ref": "#/b"}, "b": {"$ref": "#/a"}}`)
	s := findKind(got, sketch.CircularReference)
	if s == nil {
		t.Fatalf("expected CircularReference, got %+v", got)
	}
	if s.Payload.Kind() != sketch.PayloadEdges {
		t.Fatalf("expected Edges payload, got %v", s.Payload.Kind())
	}
}

func TestScan_CircularReference_Acyclic(t *testing.T) {
	got := Scan(`{"a": {"$ref": "#/b"}, "b": {"c": 1}}`)
	if findKind(got, sketch.CircularReference) != nil {
		t.Fatalf("did not expect CircularReference for an acyclic ref chain, got %+v", got)
	}
}

func TestScan_WellFormedInputHasNoSketches(t *testing.T) {
	got := Scan(`{"a": 1, "b": [1, 2, 3], "c": {"d": "e"}}`)
	if len(got) != 0 {
		t.Fatalf("expected no sketches for well-formed input, got %+v", got)
	}
}

func TestScan_ResultsAreSortedByPriority(t *testing.T) {
	got := Scan(`{"a": 1,, "a": 2,}`)
	for i := 1; i < len(got); i++ {
		if got[i-1].Kind.Priority() > got[i].Kind.Priority() {
			t.Fatalf("results not sorted by priority: %+v", got)
		}
	}
}

func TestRunFinalize_PanicIsolation(t *testing.T) {
	p := pool.New(`{"a": 1}`)
	result := runFinalize(&panickyDetector{}, p)
	if result != nil {
		t.Fatalf("expected a panicking detector's result to be nil, got %+v", result)
	}
}

type panickyDetector struct{}

func (d *panickyDetector) Name() string          { return "Panicky" }
func (d *panickyDetector) Observe(_ rune, _ int) {}
func (d *panickyDetector) Finalize(_ *pool.ShapePool) *sketch.Sketch {
	panic("boom")
}
