// Package mask redacts sketch content before it crosses the process
// boundary. Structure survives (braces, brackets, colons, commas, quotes);
// everything else becomes a placeholder byte so a reader can still judge
// shape and size without ever seeing the underlying text.
package mask

import (
	"strings"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// placeholderByte replaces every non-delimiter byte. Redact operates
// byte-wise rather than rune-wise: a multi-byte UTF-8 character becomes
// several placeholder bytes, trading exact character-count fidelity for a
// simpler, branch-free pass over the input.
const placeholderByte = '*'

func isDelimiter(b byte) bool {
	switch b {
	case '{', '}', '[', ']', ':', ',', '"':
		return true
	default:
		return false
	}
}

// Redact masks every byte of text that is not one of {}[]:," with
// placeholderByte, preserving length and structure.
func Redact(text string) string {
	if text == "" {
		return text
	}
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		b := text[i]
		if isDelimiter(b) {
			out[i] = b
		} else {
			out[i] = placeholderByte
		}
	}
	return string(out)
}

// Pointer masks each '/'-delimited segment of a JSON Pointer, keeping the
// leading '#' (if present) and the '/' separators intact.
func Pointer(ptr string) string {
	prefix := ""
	rest := ptr
	if strings.HasPrefix(ptr, "#") {
		prefix = "#"
		rest = ptr[1:]
	}
	segs := strings.Split(rest, "/")
	for i, seg := range segs {
		segs[i] = Redact(seg)
	}
	return prefix + strings.Join(segs, "/")
}

// Path masks the Str segments of a JsonPath and leaves Index segments
// untouched — an array index carries no secret text.
func Path(path sketch.JsonPath) sketch.JsonPath {
	out := make(sketch.JsonPath, len(path))
	for i, seg := range path {
		if seg.IsIndex {
			out[i] = seg
			continue
		}
		out[i] = sketch.StrSegment(Redact(seg.Str))
	}
	return out
}

func maskKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Redact(k)
	}
	return out
}

// Envelope produces a fully-owned, masked copy of s suitable for crossing
// the process boundary (logs, the repair channel, anywhere outside the
// scanning process). The original sketch is left untouched.
func Envelope(s *sketch.Sketch) *sketch.Sketch {
	if s == nil {
		return nil
	}

	out := &sketch.Sketch{Kind: s.Kind}
	if s.FixHint != nil {
		masked := Redact(*s.FixHint)
		out.FixHint = &masked
	}

	switch s.Payload.Kind() {
	case sketch.PayloadSpans:
		spans := s.Payload.Spans()
		masked := make([]sketch.SpanContext, len(spans))
		for i, sc := range spans {
			masked[i] = sketch.SpanContext{
				Span:         sc.Span,
				ContextDepth: sc.ContextDepth,
				ParentKeys:   maskKeys(sc.ParentKeys),
			}
		}
		out.Payload = sketch.SpansPayload(masked)

	case sketch.PayloadPairs:
		pairs := s.Payload.Pairs()
		masked := make([]sketch.KeyPair, len(pairs))
		for i, kp := range pairs {
			masked[i] = sketch.KeyPair{
				KeyText:      Redact(kp.KeyText),
				KeyID:        Redact(kp.KeyID),
				PairSpan:     kp.PairSpan,
				ContextDepth: kp.ContextDepth,
				ParentKeys:   maskKeys(kp.ParentKeys),
			}
		}
		out.Payload = sketch.PairsPayload(masked)

	case sketch.PayloadEdges:
		edges := s.Payload.Edges()
		masked := make([]sketch.RefEdge, len(edges))
		for i, e := range edges {
			me := sketch.RefEdge{
				From:         Path(e.From),
				To:           Path(e.To),
				Span:         e.Span,
				ContextDepth: e.ContextDepth,
				ParentKeys:   Path(e.ParentKeys),
			}
			if e.ToPointer != nil {
				p := Pointer(*e.ToPointer)
				me.ToPointer = &p
			}
			if e.Snippet != nil {
				sn := Redact(*e.Snippet)
				me.Snippet = &sn
			}
			masked[i] = me
		}
		out.Payload = sketch.EdgesPayload(masked)
	}

	return out
}
