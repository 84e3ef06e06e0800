package detect

import (
	"strings"

	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// nullOrNoneLiteral flags miscased `Null`/`NULL` spellings and any spelling
// of Python's `None`, which JSON has no equivalent for.
type nullOrNoneLiteral struct {
	maybeHasN bool
}

func newNullOrNoneLiteral() *nullOrNoneLiteral { return &nullOrNoneLiteral{} }

func (d *nullOrNoneLiteral) Name() string { return "NullOrNoneLiteral" }

func (d *nullOrNoneLiteral) Observe(c rune, _ int) {
	if c == 'n' || c == 'N' {
		d.maybeHasN = true
	}
}

func (d *nullOrNoneLiteral) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasN {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		cls := p.ClassFor(tok.Start)
		if tok.Kind == lexer.Unknown && cls != lattice.Comment && cls != lattice.String && isAsciiAlpha(input[tok.Start]) {
			start := i
			end, text := alphaRun(tokens, input, i)
			lower := strings.ToLower(text)
			isBadNull := lower == "null" && text != "null"
			isNone := lower == "none"
			if isBadNull || isNone {
				spans = append(spans, spanAt(p, tokens, input, start, tokens[start].Start, tokens[end-1].End))
			}
			i = end
			continue
		}
		i++
	}
	return finalizeSpans(sketch.NullOrNoneLiteral, input, spans)
}
