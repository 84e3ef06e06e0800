package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// unexpectedToken is the catch-all: any Unknown token not claimed by a more
// specific detector (comment, string, quote, escape, literal-casing, …),
// identified negatively by lattice class rather than by content.
type unexpectedToken struct{}

func newUnexpectedToken() *unexpectedToken { return &unexpectedToken{} }

func (d *unexpectedToken) Name() string { return "UnexpectedToken" }

func (d *unexpectedToken) Observe(_ rune, _ int) {}

func (d *unexpectedToken) Finalize(p *pool.ShapePool) *sketch.Sketch {
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	// The trailing Eof sentinel is zero-width and carries no defect.
	for idx := 0; idx < len(tokens)-1; idx++ {
		tok := tokens[idx]
		if tok.Kind != lexer.Unknown {
			continue
		}
		class := p.ClassFor(tok.Start)
		if class == lattice.Comment || class == lattice.String || class == lattice.Key {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, idx, tok.Start, tok.End))
	}
	return finalizeSpans(sketch.UnexpectedToken, input, spans)
}
