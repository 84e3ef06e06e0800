package detect

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/devcmd/runtime/circular"
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
	"github.com/aledsdavies/devcmd/runtime/skeleton"
)

// circularReference collects every `$ref` pointer edge in the document,
// then hands them to runtime/circular to find cycles. Emits one Edges
// sketch (the union of every cycle's edges) or nothing if the ref graph
// is acyclic.
type circularReference struct {
	maybeHasRef bool
}

func newCircularReference() *circularReference { return &circularReference{} }

func (d *circularReference) Name() string { return "CircularReference" }

func (d *circularReference) Observe(c rune, _ int) {
	if c == '$' {
		d.maybeHasRef = true
	}
}

func (d *circularReference) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasRef {
		return nil
	}
	tokens := p.Tokens()
	skel := p.Skeleton()
	input := p.Input()

	var edges []sketch.RefEdge
	for _, pair := range skel.ObjPairs {
		keyTok := tokens[pair.KeySpan.Start]
		if keyTok.Kind != lexer.StringLit || stringLitText(input, keyTok) != "$ref" {
			continue
		}
		valTok := firstSignificantIn(tokens, pair.ValueSpan)
		if valTok == nil || valTok.Kind != lexer.StringLit {
			continue
		}
		valText := stringLitText(input, *valTok)
		if !strings.HasPrefix(valText, "#") {
			continue
		}

		parentKeys, depth := skel.PathAt(tokens, input, pair.KeySpan.Start)
		fromPath := append(sketch.FromKeys(parentKeys), sketch.StrSegment("$ref"))
		toPath := parsePointer(valText)
		span := sketch.Span{Start: valTok.Start, End: valTok.End}
		ptr := valText

		edges = append(edges, sketch.RefEdge{
			From:         fromPath,
			To:           toPath,
			Span:         &span,
			ContextDepth: depth,
			ParentKeys:   sketch.FromKeys(parentKeys),
			ToPointer:    &ptr,
		})
	}

	if len(edges) == 0 {
		return nil
	}
	cycles := circular.DetectRefCycles(edges)
	if len(cycles) == 0 {
		return nil
	}

	var flat []sketch.RefEdge
	for _, cyc := range cycles {
		flat = append(flat, cyc...)
	}
	return &sketch.Sketch{Kind: sketch.CircularReference, Payload: sketch.EdgesPayload(flat)}
}

// stringLitText strips the surrounding quotes from a StringLit token.
func stringLitText(input string, tok lexer.Token) string {
	if tok.End <= tok.Start+1 {
		return ""
	}
	return input[tok.Start+1 : tok.End-1]
}

// firstSignificantIn returns the first non-whitespace/comment token inside
// a skeleton TokenSpan, or nil if the span holds none.
func firstSignificantIn(tokens []lexer.Token, span skeleton.TokenSpan) *lexer.Token {
	for i := span.Start; i < span.End && i < len(tokens); i++ {
		if tokens[i].Significant() {
			return &tokens[i]
		}
	}
	return nil
}

// parsePointer normalizes a `$ref` value into a JsonPath: `#/a/b/0` is read
// as a JSON Pointer; a bare `#a.b.0` is treated as the same pointer with
// `.` standing in for `/`. Numeric segments become index segments.
func parsePointer(ref string) sketch.JsonPath {
	rest := strings.TrimPrefix(ref, "#")
	var parts []string
	if strings.HasPrefix(rest, "/") {
		parts = strings.Split(strings.TrimPrefix(rest, "/"), "/")
	} else if rest != "" {
		parts = strings.Split(rest, ".")
	}

	path := make(sketch.JsonPath, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil && idx >= 0 {
			path = append(path, sketch.IndexSegment(idx))
		} else {
			path = append(path, sketch.StrSegment(part))
		}
	}
	return path
}
