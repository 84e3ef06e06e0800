package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// leadingComma flags a `,` that is the first significant token right after
// an opening `{`/`[`.
type leadingComma struct {
	maybeHasComma bool
}

func newLeadingComma() *leadingComma { return &leadingComma{} }

func (d *leadingComma) Name() string { return "LeadingComma" }

func (d *leadingComma) Observe(c rune, _ int) {
	if c == ',' {
		d.maybeHasComma = true
	}
}

func (d *leadingComma) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasComma {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.LBrace && tok.Kind != lexer.LBracket {
			continue
		}
		next := nextSignificant(tokens, idx)
		if next < 0 || tokens[next].Kind != lexer.Comma {
			continue
		}
		if excludedClass(p, tokens[next].Start) {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, next, tokens[next].Start, tokens[next].End))
	}
	return finalizeSpans(sketch.LeadingComma, input, spans)
}
