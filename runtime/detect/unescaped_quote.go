package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// unescapedQuote flags a lone `"` the lexer couldn't pair into a string
// literal — surfaced as a one-byte Unknown token.
type unescapedQuote struct {
	maybeHasQuote bool
}

func newUnescapedQuote() *unescapedQuote { return &unescapedQuote{} }

func (d *unescapedQuote) Name() string { return "UnescapedQuote" }

func (d *unescapedQuote) Observe(c rune, _ int) {
	if c == '"' {
		d.maybeHasQuote = true
	}
}

func (d *unescapedQuote) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasQuote {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind == lexer.Unknown && input[tok.Start] == '"' {
			spans = append(spans, spanAt(p, tokens, input, idx, tok.Start, tok.End))
		}
	}
	return finalizeSpans(sketch.UnescapedQuote, input, spans)
}
