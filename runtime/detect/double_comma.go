package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// doubleComma flags two or more `,` tokens separated only by whitespace or
// comments — a run with no value token between successive commas.
type doubleComma struct {
	maybeHasComma bool
}

func newDoubleComma() *doubleComma { return &doubleComma{} }

func (d *doubleComma) Name() string { return "DoubleComma" }

func (d *doubleComma) Observe(c rune, _ int) {
	if c == ',' {
		d.maybeHasComma = true
	}
}

func (d *doubleComma) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasComma {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	i := 0
	for i < len(tokens) {
		if tokens[i].Kind != lexer.Comma {
			i++
			continue
		}
		start := i
		lastComma := i
		j := i + 1
	scan:
		for j < len(tokens) {
			switch tokens[j].Kind {
			case lexer.Whitespace, lexer.Comment:
				j++
			case lexer.Comma:
				lastComma = j
				j++
			default:
				break scan
			}
		}
		if lastComma != start {
			spans = append(spans, spanAt(p, tokens, input, start, tokens[start].Start, tokens[lastComma].End))
		}
		i = lastComma + 1
	}
	return finalizeSpans(sketch.DoubleComma, input, spans)
}
