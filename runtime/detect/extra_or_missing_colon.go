package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// extraOrMissingColon checks each recovered object pair's key-to-value gap:
// zero colons means a missing separator (span = the trimmed gap itself);
// more than one means extras (span = the 2nd colon through the last).
type extraOrMissingColon struct {
	maybeHasBrace bool
}

func newExtraOrMissingColon() *extraOrMissingColon { return &extraOrMissingColon{} }

func (d *extraOrMissingColon) Name() string { return "ExtraOrMissingColon" }

func (d *extraOrMissingColon) Observe(c rune, _ int) {
	if c == '{' {
		d.maybeHasBrace = true
	}
}

func (d *extraOrMissingColon) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasBrace {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	var spans []sketch.SpanContext

	for _, pair := range skel.ObjPairs {
		keyEnd := pair.KeySpan.End
		valStart := pair.ValueSpan.Start
		if valStart > len(tokens) || keyEnd > valStart {
			continue
		}
		var colonIdxs []int
		for i := keyEnd; i < valStart; i++ {
			if tokens[i].Kind == lexer.Colon {
				colonIdxs = append(colonIdxs, i)
			}
		}
		switch {
		case len(colonIdxs) == 0:
			if valStart >= len(tokens) {
				continue
			}
			gapStart := tokens[pair.KeySpan.Start].End
			gapEnd := tokens[valStart].Start
			s, e := trimWhitespace(input, gapStart, gapEnd)
			spans = append(spans, spanAt(p, tokens, input, pair.KeySpan.Start, s, e))
		case len(colonIdxs) > 1:
			start := tokens[colonIdxs[1]].Start
			end := tokens[colonIdxs[len(colonIdxs)-1]].End
			spans = append(spans, spanAt(p, tokens, input, pair.KeySpan.Start, start, end))
		}
	}
	return finalizeSpans(sketch.ExtraOrMissingColon, input, spans)
}
