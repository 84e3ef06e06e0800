package detect

import (
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// improperNesting reads the same skeleton.BracketMismatches list as
// UnbalancedBracket but — per spec.md §9's documented overlap — skips the
// single-char merge pass, so the two categories stay distinguishable even
// though they're built from identical culprit tokens.
type improperNesting struct {
	maybeHasBracket bool
}

func newImproperNesting() *improperNesting { return &improperNesting{} }

func (d *improperNesting) Name() string { return "ImproperNesting" }

func (d *improperNesting) Observe(c rune, _ int) {
	if c == '{' || c == '}' || c == '[' || c == ']' {
		d.maybeHasBracket = true
	}
}

func (d *improperNesting) Finalize(p *pool.ShapePool) *sketch.Sketch {
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
	return finalizeSpansNoMerge(sketch.ImproperNesting, spans)
}
