package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// commentInJSON flags any comment token — `//` or `/* */` — since strict
// JSON has no comment syntax at all.
type commentInJSON struct {
	maybeHasSlash bool
}

func newCommentInJSON() *commentInJSON { return &commentInJSON{} }

func (d *commentInJSON) Name() string { return "CommentInJSON" }

func (d *commentInJSON) Observe(c rune, _ int) {
	if c == '/' {
		d.maybeHasSlash = true
	}
}

func (d *commentInJSON) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasSlash {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind == lexer.Comment && p.ClassFor(tok.Start) == lattice.Comment {
			spans = append(spans, spanAt(p, tokens, input, idx, tok.Start, tok.End))
		}
	}
	return finalizeSpans(sketch.CommentInJSON, input, spans)
}
