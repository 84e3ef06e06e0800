package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// invalidCharacter flags Unknown tokens that aren't already handled by a
// more specific detector: not a `"` (UnescapedQuote's job) and not an
// ASCII letter (literal-casing detectors' job).
type invalidCharacter struct {
	sawAnyToken bool
}

func newInvalidCharacter() *invalidCharacter { return &invalidCharacter{} }

func (d *invalidCharacter) Name() string { return "InvalidCharacter" }

func (d *invalidCharacter) Observe(_ rune, _ int) {
	d.sawAnyToken = true
}

func (d *invalidCharacter) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.sawAnyToken {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.Unknown {
			continue
		}
		b := input[tok.Start]
		if b == '"' || isAsciiAlpha(b) {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, idx, tok.Start, tok.End))
	}
	return finalizeSpans(sketch.InvalidCharacter, input, spans)
}
