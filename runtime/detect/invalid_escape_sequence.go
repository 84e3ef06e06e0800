package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// invalidEscapeSequence flags `\` inside a StringLit followed by anything
// other than `"\/bfnrt` or a `u` + 4 hex digits.
type invalidEscapeSequence struct {
	maybeHasBackslash bool
}

func newInvalidEscapeSequence() *invalidEscapeSequence { return &invalidEscapeSequence{} }

func (d *invalidEscapeSequence) Name() string { return "InvalidEscapeSequence" }

func (d *invalidEscapeSequence) Observe(c rune, _ int) {
	if c == '\\' {
		d.maybeHasBackslash = true
	}
}

func (d *invalidEscapeSequence) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasBackslash {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.StringLit || tok.End <= tok.Start+1 {
			continue
		}
		for _, rng := range collectInvalidEscapes(input, tok.Start, tok.End) {
			spans = append(spans, spanAt(p, tokens, input, idx, rng[0], rng[1]))
		}
	}
	return finalizeSpans(sketch.InvalidEscapeSequence, input, spans)
}

// collectInvalidEscapes walks the bytes strictly inside the quotes of a
// string literal span and returns the byte ranges of malformed `\` escapes.
func collectInvalidEscapes(input string, spanStart, spanEnd int) [][2]int {
	var out [][2]int
	if spanEnd <= spanStart+1 {
		return out
	}
	b := []byte(input)
	i := spanStart + 1 // skip opening quote
	for i < spanEnd-1 {
		if b[i] != '\\' {
			i++
			continue
		}
		escStart := i
		if i+1 >= spanEnd-1 {
			out = append(out, [2]int{escStart, clamp(escStart+1, spanEnd)})
			break
		}
		if b[i+1] == '\\' {
			if i+2 < spanEnd-1 && !isValidEscapeChar(b[i+2]) {
				out = append(out, [2]int{i + 1, clamp(i+3, spanEnd)})
			}
			i += 2
			continue
		}
		next := b[i+1]
		switch next {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			i += 2
		case 'u':
			ok := true
			consumed := 0
			j := i + 2
			for k := 0; k < 4; k++ {
				if j >= spanEnd-1 {
					ok = false
					break
				}
				if isAsciiHexDigit(b[j]) {
					j++
					consumed++
				} else {
					ok = false
					j++
					consumed++
					break
				}
			}
			if !ok {
				out = append(out, [2]int{escStart, clamp(escStart+2+consumed, spanEnd)})
			}
			i = j
		default:
			out = append(out, [2]int{escStart, clamp(i+2, spanEnd)})
			i += 2
		}
	}
	return out
}

func isValidEscapeChar(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	default:
		return false
	}
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}
