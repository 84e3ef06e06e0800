package detect

import (
	"strconv"
	"strings"

	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// overlyLargeNumber flags numeric literals whose magnitude (significant
// integer digits plus exponent) exceeds 15 — past float64's safe precision.
type overlyLargeNumber struct{}

func newOverlyLargeNumber() *overlyLargeNumber { return &overlyLargeNumber{} }

func (d *overlyLargeNumber) Name() string { return "OverlyLargeNumber" }

func (d *overlyLargeNumber) Observe(_ rune, _ int) {}

func (d *overlyLargeNumber) Finalize(p *pool.ShapePool) *sketch.Sketch {
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.NumberLit {
			continue
		}
		cls := p.ClassFor(tok.Start)
		if cls == lattice.Comment || cls == lattice.String {
			continue
		}
		slice := input[tok.Start:tok.End]
		if isOverlyLargeNumber(slice) {
			spans = append(spans, spanAt(p, tokens, input, idx, tok.Start, tok.End))
		}
	}
	return finalizeSpans(sketch.OverlyLargeNumber, input, spans)
}

func isOverlyLargeNumber(numStr string) bool {
	num := strings.TrimPrefix(numStr, "-")
	parts := strings.FieldsFunc(num, func(r rune) bool { return r == 'e' || r == 'E' })
	if len(parts) == 0 {
		return false
	}
	base := parts[0]
	exponent := 0
	if len(parts) > 1 {
		if v, err := strconv.Atoi(parts[1]); err == nil {
			exponent = v
		}
	}
	baseParts := strings.SplitN(base, ".", 2)
	integerPart := baseParts[0]
	intTrimmed := strings.TrimLeft(integerPart, "0")
	intLen := len(intTrimmed)
	if intLen == 0 {
		intLen = 1
	}
	magnitude := intLen + exponent
	return magnitude > 15
}
