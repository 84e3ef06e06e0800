package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// invalidNumberFormat validates the textual grammar of contiguous NumberLit
// runs — the lexer itself is loose about what counts as a number, so
// malformed literals (leading zeros, missing fraction/exponent digits) pass
// through as tokens and this detector is what actually rejects them.
type invalidNumberFormat struct {
	maybeHasDigit bool
}

func newInvalidNumberFormat() *invalidNumberFormat { return &invalidNumberFormat{} }

func (d *invalidNumberFormat) Name() string { return "InvalidNumberFormat" }

func (d *invalidNumberFormat) Observe(c rune, _ int) {
	if c >= '0' && c <= '9' {
		d.maybeHasDigit = true
	}
}

func (d *invalidNumberFormat) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasDigit {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		cls := p.ClassFor(tok.Start)
		if tok.Kind == lexer.NumberLit && cls != lattice.Comment && cls != lattice.String {
			startIdx := i
			endIdx := i + 1
			for endIdx < len(tokens) && tokens[endIdx].Kind == lexer.NumberLit && tokens[endIdx].Start == tokens[endIdx-1].End {
				endIdx++
			}
			text := input[tokens[startIdx].Start:tokens[endIdx-1].End]
			if !isValidNumber(text) {
				spans = append(spans, spanAt(p, tokens, input, startIdx, tokens[startIdx].Start, tokens[endIdx-1].End))
			}
			i = endIdx
			continue
		}
		i++
	}
	return finalizeSpans(sketch.InvalidNumberFormat, input, spans)
}

func isValidNumber(s string) bool {
	b := []byte(s)
	n := len(b)
	if n == 0 {
		return false
	}
	i := 0
	if b[i] == '-' {
		i++
		if i == n || !isAsciiDigit(b[i]) {
			return false
		}
	}
	if b[i] == '0' {
		i++
		if i < n && isAsciiDigit(b[i]) {
			return false // leading zero
		}
	} else {
		for i < n && isAsciiDigit(b[i]) {
			i++
		}
	}
	if i < n && b[i] == '.' {
		i++
		start := i
		for i < n && isAsciiDigit(b[i]) {
			i++
		}
		if start == i {
			return false // no digits after decimal
		}
	}
	if i < n && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < n && (b[i] == '+' || b[i] == '-') {
			i++
		}
		start := i
		for i < n && isAsciiDigit(b[i]) {
			i++
		}
		if start == i {
			return false // missing exponent digits
		}
	}
	return i == n
}
