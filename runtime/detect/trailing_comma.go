package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// trailingComma flags a `,` that is the last significant token before a
// closing `}`/`]`.
type trailingComma struct {
	maybeHasComma bool
}

func newTrailingComma() *trailingComma { return &trailingComma{} }

func (d *trailingComma) Name() string { return "TrailingComma" }

func (d *trailingComma) Observe(c rune, _ int) {
	if c == ',' {
		d.maybeHasComma = true
	}
}

func (d *trailingComma) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasComma {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.RBrace && tok.Kind != lexer.RBracket {
			continue
		}
		prev := prevSignificant(tokens, idx)
		if prev < 0 || tokens[prev].Kind != lexer.Comma {
			continue
		}
		if excludedClass(p, tokens[prev].Start) {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, prev, tokens[prev].Start, tokens[prev].End))
	}
	return finalizeSpans(sketch.TrailingComma, input, spans)
}
