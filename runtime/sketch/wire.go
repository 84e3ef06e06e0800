package sketch

import "encoding/json"

// wireSketch is the JSON wire contract: two fields, kind (enum name) and
// payload with exactly one of Spans/Pairs/Edges populated.
type wireSketch struct {
	Kind    string       `json:"kind"`
	Payload wirePayload  `json:"payload"`
	FixHint *string      `json:"fix_hint,omitempty"`
}

type wirePayload struct {
	Spans []wireSpanContext `json:"Spans,omitempty"`
	Pairs []wireKeyPair     `json:"Pairs,omitempty"`
	Edges []wireRefEdge     `json:"Edges,omitempty"`
}

type wireSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type wireSpanContext struct {
	Span         wireSpan `json:"span"`
	ContextDepth uint8    `json:"context_depth"`
	ParentKeys   []string `json:"parent_keys"`
}

type wireKeyPair struct {
	KeyText      string   `json:"key_text"`
	KeyID        string   `json:"key_id"`
	PairSpan     wireSpan `json:"pair_span"`
	ContextDepth uint8    `json:"context_depth"`
	ParentKeys   []string `json:"parent_keys"`
}

type wireJsonPathSegment struct {
	Type  string `json:"type"` // "str" or "index"
	Str   string `json:"str,omitempty"`
	Index int    `json:"index,omitempty"`
}

type wireRefEdge struct {
	From         []wireJsonPathSegment `json:"from"`
	To           []wireJsonPathSegment `json:"to"`
	Span         *wireSpan             `json:"span,omitempty"`
	ContextDepth uint8                 `json:"context_depth"`
	ParentKeys   []wireJsonPathSegment `json:"parent_keys"`
	ToPointer    *string               `json:"to_pointer,omitempty"`
	Snippet      *string               `json:"snippet,omitempty"`
}

func toWirePath(p JsonPath) []wireJsonPathSegment {
	out := make([]wireJsonPathSegment, len(p))
	for i, seg := range p {
		if seg.IsIndex {
			out[i] = wireJsonPathSegment{Type: "index", Index: seg.Index}
		} else {
			out[i] = wireJsonPathSegment{Type: "str", Str: seg.Str}
		}
	}
	return out
}

// MarshalJSON implements the wire contract from spec.md §6.
func (s Sketch) MarshalJSON() ([]byte, error) {
	w := wireSketch{Kind: s.Kind.String(), FixHint: s.FixHint}
	switch s.Payload.Kind() {
	case PayloadSpans:
		spans := s.Payload.Spans()
		w.Payload.Spans = make([]wireSpanContext, len(spans))
		for i, sc := range spans {
			w.Payload.Spans[i] = wireSpanContext{
				Span:         wireSpan{Start: sc.Span.Start, End: sc.Span.End},
				ContextDepth: sc.ContextDepth,
				ParentKeys:   sc.ParentKeys,
			}
		}
	case PayloadPairs:
		pairs := s.Payload.Pairs()
		w.Payload.Pairs = make([]wireKeyPair, len(pairs))
		for i, kp := range pairs {
			w.Payload.Pairs[i] = wireKeyPair{
				KeyText:      kp.KeyText,
				KeyID:        kp.KeyID,
				PairSpan:     wireSpan{Start: kp.PairSpan.Start, End: kp.PairSpan.End},
				ContextDepth: kp.ContextDepth,
				ParentKeys:   kp.ParentKeys,
			}
		}
	case PayloadEdges:
		edges := s.Payload.Edges()
		w.Payload.Edges = make([]wireRefEdge, len(edges))
		for i, e := range edges {
			var sp *wireSpan
			if e.Span != nil {
				sp = &wireSpan{Start: e.Span.Start, End: e.Span.End}
			}
			w.Payload.Edges[i] = wireRefEdge{
				From:         toWirePath(e.From),
				To:           toWirePath(e.To),
				Span:         sp,
				ContextDepth: e.ContextDepth,
				ParentKeys:   toWirePath(e.ParentKeys),
				ToPointer:    e.ToPointer,
				Snippet:      e.Snippet,
			}
		}
	}
	return json.Marshal(w)
}
