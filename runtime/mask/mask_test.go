package mask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

func TestRedact_PreservesDelimitersAndLength(t *testing.T) {
	in := `{"secret": 42}`
	got := Redact(in)
	require.Len(t, got, len(in))
	for i := 0; i < len(in); i++ {
		if isDelimiter(in[i]) {
			require.Equalf(t, in[i], got[i], "delimiter at %d should be preserved", i)
		}
	}
	require.NotEqual(t, in, got, "expected non-delimiter bytes to be masked")
}

func TestRedact_Empty(t *testing.T) {
	require.Equal(t, "", Redact(""))
}

func TestPointer_PreservesStructure(t *testing.T) {
	got := Pointer("#/accounts/0/apiKey")
	require.Equal(t, byte('#'), got[0])
	segs := 0
	for _, c := range got {
		if c == '/' {
			segs++
		}
	}
	require.Equal(t, 3, segs)
	require.NotEqual(t, "#/accounts/0/apiKey", got)
}

func TestPointer_NoLeadingHash(t *testing.T) {
	got := Pointer("a/b")
	require.NotEqual(t, byte('#'), got[0])
}

func TestPath_MasksStrPreservesIndex(t *testing.T) {
	in := sketch.JsonPath{
		sketch.StrSegment("accounts"),
		sketch.IndexSegment(3),
		sketch.StrSegment("apiKey"),
	}
	got := Path(in)

	want := sketch.JsonPath{
		sketch.StrSegment(Redact("accounts")),
		sketch.IndexSegment(3),
		sketch.StrSegment(Redact("apiKey")),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Path() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvelope_Spans(t *testing.T) {
	s := &sketch.Sketch{
		Kind: sketch.DuplicateKey,
		Payload: sketch.SpansPayload([]sketch.SpanContext{
			sketch.NewSpanContext(`{"apiKey": 1}`, 1, 8, 1, []string{"apiKey"}),
		}),
	}
	out := Envelope(s)
	require.Equal(t, s.Kind, out.Kind)

	got := out.Payload.Spans()[0]
	want := s.Payload.Spans()[0]
	require.NotEqual(t, want.ParentKeys[0], got.ParentKeys[0], "expected parent key masked")
	if diff := cmp.Diff(want.Span, got.Span); diff != "" {
		t.Fatalf("span offsets should survive masking unchanged (-want +got):\n%s", diff)
	}
}

func TestEnvelope_Edges(t *testing.T) {
	ptr := "#/b"
	snippet := `{"$ref": "#/b"}`
	s := &sketch.Sketch{
		Kind: sketch.CircularReference,
		Payload: sketch.EdgesPayload([]sketch.RefEdge{
			{
				From:      sketch.FromKeys([]string{"a", "$ref"}),
				To:        sketch.FromKeys([]string{"b"}),
				ToPointer: &ptr,
				Snippet:   &snippet,
			},
		}),
	}
	out := Envelope(s)
	edge := out.Payload.Edges()[0]

	require.NotEqual(t, ptr, *edge.ToPointer)
	require.Equal(t, byte('#'), (*edge.ToPointer)[0])
	require.NotEqual(t, snippet, *edge.Snippet)
}

func TestEnvelope_Nil(t *testing.T) {
	require.Nil(t, Envelope(nil))
}
