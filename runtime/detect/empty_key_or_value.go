package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// emptyKeyOrValue flags a key string that is exactly `""`, or a `:` whose
// value slot holds nothing but whitespace/comments before the next `,`/
// `]`/`}`.
type emptyKeyOrValue struct {
	maybeHasColon bool
}

func newEmptyKeyOrValue() *emptyKeyOrValue { return &emptyKeyOrValue{} }

func (d *emptyKeyOrValue) Name() string { return "EmptyKeyOrValue" }

func (d *emptyKeyOrValue) Observe(c rune, _ int) {
	if c == ':' {
		d.maybeHasColon = true
	}
}

func (d *emptyKeyOrValue) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasColon {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	var spans []sketch.SpanContext

	for _, pair := range skel.ObjPairs {
		keyTok := tokens[pair.KeySpan.Start]
		if keyTok.Kind == lexer.StringLit && keyTok.End-keyTok.Start == 2 {
			spans = append(spans, spanAt(p, tokens, input, pair.KeySpan.Start, keyTok.Start, keyTok.End))
		}
	}

	for i, tok := range tokens {
		if tok.Kind != lexer.Colon {
			continue
		}
		j := i + 1
		for j < len(tokens) && (tokens[j].Kind == lexer.Whitespace || tokens[j].Kind == lexer.Comment) {
			j++
		}
		if j < len(tokens) && (tokens[j].Kind == lexer.Comma || tokens[j].Kind == lexer.RBracket || tokens[j].Kind == lexer.RBrace) {
			spans = append(spans, spanAt(p, tokens, input, i, tok.Start, tok.End))
		}
	}
	return finalizeSpans(sketch.EmptyKeyOrValue, input, spans)
}
