// Package sketch defines the typed defect report a detector emits: Kind (a
// closed, priority-ordered enumeration of defect categories), the payload
// variants a Sketch can carry (byte spans, duplicate-key pairs, or circular
// reference edges), and the structural-context types (SpanContext, KeyPair,
// RefEdge, JsonPath) those payloads are built from.
package sketch

import "strings"

// Kind is a closed enumeration of defect categories. Its integer value is
// also its reporting priority: the orchestrator sorts its final sketch list
// by ascending Kind, so lower-valued kinds are reported first.
type Kind int

const (
	TrailingComma Kind = iota
	LeadingComma
	DoubleComma
	MissingCommaBetweenItem
	ExtraOrMissingColon
	DuplicateKey
	EmptyKeyOrValue
	UnbalancedBracket
	ImproperNesting
	ExtraOrMissingBracketComplex
	CommentInJSON
	ExcessWhitespaceOrNewline
	InvalidCharacter
	UnescapedQuote
	InvalidEscapeSequence
	ImproperEncoding
	InvalidNumberFormat
	OverlyLargeNumber
	IncorrectBooleanLiteral
	NullOrNoneLiteral
	MissingQuote
	MixedTypeInArray
	UnexpectedToken
	CircularReference
)

var kindNames = [...]string{
	"TrailingComma",
	"LeadingComma",
	"DoubleComma",
	"MissingCommaBetweenItem",
	"ExtraOrMissingColon",
	"DuplicateKey",
	"EmptyKeyOrValue",
	"UnbalancedBracket",
	"ImproperNesting",
	"ExtraOrMissingBracketComplex",
	"CommentInJSON",
	"ExcessWhitespaceOrNewline",
	"InvalidCharacter",
	"UnescapedQuote",
	"InvalidEscapeSequence",
	"ImproperEncoding",
	"InvalidNumberFormat",
	"OverlyLargeNumber",
	"IncorrectBooleanLiteral",
	"NullOrNoneLiteral",
	"MissingQuote",
	"MixedTypeInArray",
	"UnexpectedToken",
	"CircularReference",
}

// String returns the wire-stable name used for JSON serialization.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Priority returns this Kind's position in the canonical reporting order.
func (k Kind) Priority() int { return int(k) }

// Span is a half-open byte range [Start, End) into the original input.
type Span struct {
	Start int
	End   int
}

// Len reports the span's width in bytes.
func (s Span) Len() int { return s.End - s.Start }

// SpanContext anchors a byte span to the structural position it was found
// at: the depth and key chain of the object/array that contains it.
type SpanContext struct {
	Span         Span
	ContextDepth uint8
	ParentKeys   []string
}

// NewSpanContext builds a SpanContext. input is accepted for parity with
// how detectors derive context (a bounds-checked slice of it underlies
// ParentKeys already, via Skeleton.PathAt) but is not itself retained.
func NewSpanContext(input string, start, end int, depth uint8, parentKeys []string) SpanContext {
	_ = input
	return SpanContext{Span: Span{Start: start, End: end}, ContextDepth: depth, ParentKeys: parentKeys}
}

// KeyPair adds duplicated-key-specific fields beyond a plain SpanContext:
// the offending key's text and a stable identifier alongside its pair span.
type KeyPair struct {
	KeyText      string
	KeyID        string
	PairSpan     Span
	ContextDepth uint8
	ParentKeys   []string
}

// JsonPathSegment is one tagged element of a JsonPath: either a string
// field name or a numeric array index. Exactly one of the two is valid,
// selected by IsIndex.
type JsonPathSegment struct {
	IsIndex bool
	Str     string
	Index   int
}

// StrSegment builds a string-keyed JsonPathSegment.
func StrSegment(s string) JsonPathSegment { return JsonPathSegment{Str: s} }

// IndexSegment builds an array-index JsonPathSegment.
func IndexSegment(i int) JsonPathSegment { return JsonPathSegment{IsIndex: true, Index: i} }

// JsonPath is a sequence of tagged segments identifying a structural
// location, the non-string-based equivalent of a JSON Pointer.
type JsonPath []JsonPathSegment

// FromKeys builds a JsonPath of only Str segments from a parent-key chain,
// e.g. the (parentKeys, depth) pair returned by Skeleton.PathAt.
func FromKeys(keys []string) JsonPath {
	segs := make(JsonPath, len(keys))
	for i, k := range keys {
		segs[i] = StrSegment(k)
	}
	return segs
}

// String renders the path in pointer-like form, purely for diagnostics;
// it is not itself a JSON Pointer encoder (see runtime/mask for that).
func (p JsonPath) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(itoa(seg.Index))
		} else {
			b.WriteString(seg.Str)
		}
	}
	return b.String()
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// RefEdge is one `$ref` reference: where it was found (From) and what it
// points to (To), plus enough context to mask and report it.
type RefEdge struct {
	From         JsonPath
	To           JsonPath
	Span         *Span
	ContextDepth uint8
	ParentKeys   JsonPath
	ToPointer    *string
	Snippet      *string
}

// PayloadKind discriminates which variant of Payload is populated.
type PayloadKind int

const (
	PayloadSpans PayloadKind = iota
	PayloadPairs
	PayloadEdges
)

// Payload is the tagged union a Sketch carries: exactly one of Spans,
// Pairs, or Edges is populated, selected by Kind().
type Payload struct {
	kind  PayloadKind
	spans []SpanContext
	pairs []KeyPair
	edges []RefEdge
}

// SpansPayload wraps a span list as a Payload.
func SpansPayload(spans []SpanContext) Payload { return Payload{kind: PayloadSpans, spans: spans} }

// PairsPayload wraps a key-pair list as a Payload.
func PairsPayload(pairs []KeyPair) Payload { return Payload{kind: PayloadPairs, pairs: pairs} }

// EdgesPayload wraps an edge list as a Payload.
func EdgesPayload(edges []RefEdge) Payload { return Payload{kind: PayloadEdges, edges: edges} }

// Kind reports which variant is populated.
func (p Payload) Kind() PayloadKind { return p.kind }

// Spans returns the span list; valid only when Kind() == PayloadSpans.
func (p Payload) Spans() []SpanContext { return p.spans }

// Pairs returns the key-pair list; valid only when Kind() == PayloadPairs.
func (p Payload) Pairs() []KeyPair { return p.pairs }

// Edges returns the edge list; valid only when Kind() == PayloadEdges.
func (p Payload) Edges() []RefEdge { return p.edges }

// Empty reports whether the populated variant carries zero elements.
func (p Payload) Empty() bool {
	switch p.kind {
	case PayloadSpans:
		return len(p.spans) == 0
	case PayloadPairs:
		return len(p.pairs) == 0
	case PayloadEdges:
		return len(p.edges) == 0
	default:
		return true
	}
}

// Sketch is one detector's typed, context-annotated defect report.
type Sketch struct {
	Kind    Kind
	Payload Payload
	FixHint *string
}
