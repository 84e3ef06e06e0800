package detect

import (
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// extraOrMissingBracketComplex has no surviving source file in the
// original implementation (referenced by its module list but absent from
// the retrieved tree) — see DESIGN.md. It is built from spec.md §4.5's
// description alone: where UnbalancedBracket/ImproperNesting span just the
// culprit token, this one spans from the culprit to the end of input,
// capturing the deeper consequence of an unresolved bracket mismatch
// (everything after it is structurally suspect).
type extraOrMissingBracketComplex struct {
	maybeHasBracket bool
}

func newExtraOrMissingBracketComplex() *extraOrMissingBracketComplex {
	return &extraOrMissingBracketComplex{}
}

func (d *extraOrMissingBracketComplex) Name() string { return "ExtraOrMissingBracketComplex" }

func (d *extraOrMissingBracketComplex) Observe(c rune, _ int) {
	if c == '{' || c == '}' || c == '[' || c == ']' {
		d.maybeHasBracket = true
	}
}

func (d *extraOrMissingBracketComplex) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasBracket {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	if len(skel.BracketMismatches) == 0 {
		return nil
	}
	var spans []sketch.SpanContext

	for _, off := range skel.BracketMismatches {
		idx := tokenAt(tokens, off)
		if idx < 0 {
			continue
		}
		spans = append(spans, spanAt(p, tokens, input, idx, tokens[idx].Start, len(input)))
	}
	return finalizeSpansNoMerge(sketch.ExtraOrMissingBracketComplex, spans)
}
