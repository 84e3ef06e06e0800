package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// missingCommaBetweenItem flags two consecutive significant tokens — one
// ending a value, the next starting one — at the same structural depth and
// parent path, with no `,` or `:` between them.
type missingCommaBetweenItem struct {
	sawAnyToken bool
}

func newMissingCommaBetweenItem() *missingCommaBetweenItem { return &missingCommaBetweenItem{} }

func (d *missingCommaBetweenItem) Name() string { return "MissingCommaBetweenItem" }

func (d *missingCommaBetweenItem) Observe(_ rune, _ int) {
	d.sawAnyToken = true
}

func isValueStartKind(k lexer.Kind) bool {
	switch k {
	case lexer.StringLit, lexer.NumberLit, lexer.True, lexer.False, lexer.Null, lexer.LBrace, lexer.LBracket:
		return true
	default:
		return false
	}
}

func isValueEndKind(k lexer.Kind) bool {
	switch k {
	case lexer.StringLit, lexer.NumberLit, lexer.True, lexer.False, lexer.Null, lexer.RBrace, lexer.RBracket:
		return true
	default:
		return false
	}
}

func (d *missingCommaBetweenItem) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.sawAnyToken {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	var spans []sketch.SpanContext

	lastSig := -1
	for i, tok := range tokens {
		if !tok.Significant() {
			continue
		}
		if lastSig >= 0 {
			prevTok := tokens[lastSig]
			if isValueEndKind(prevTok.Kind) && isValueStartKind(tok.Kind) {
				prevKeys, prevDepth := skel.PathAt(tokens, input, lastSig)
				curKeys, curDepth := skel.PathAt(tokens, input, i)
				if prevDepth == curDepth && parentKeyString(prevKeys) == parentKeyString(curKeys) {
					spans = append(spans, sketch.NewSpanContext(input, prevTok.End, tok.Start, curDepth, curKeys))
				}
			}
		}
		lastSig = i
	}
	return finalizeSpans(sketch.MissingCommaBetweenItem, input, spans)
}
