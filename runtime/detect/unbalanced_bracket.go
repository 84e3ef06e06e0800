package detect

import (
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// unbalancedBracket spans the culprit token at each byte offset the
// skeleton recorded as a bracket mismatch (unmatched closer or dangling
// opener), merged per the usual single-char policy.
type unbalancedBracket struct {
	maybeHasBracket bool
}

func newUnbalancedBracket() *unbalancedBracket { return &unbalancedBracket{} }

func (d *unbalancedBracket) Name() string { return "UnbalancedBracket" }

func (d *unbalancedBracket) Observe(c rune, _ int) {
	if c == '{' || c == '}' || c == '[' || c == ']' {
		d.maybeHasBracket = true
	}
}

func (d *unbalancedBracket) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasBracket {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	var spans []sketch.SpanContext

	for _, off := range skel.BracketMismatches {
		idx := tokenAt(tokens, off)
		if idx < 0 {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, idx, tokens[idx].Start, tokens[idx].End))
	}
	return finalizeSpans(sketch.UnbalancedBracket, input, spans)
}
