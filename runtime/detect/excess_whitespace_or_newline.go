package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// excessWhitespaceOrNewline inspects each Gap (whitespace) token for three
// cosmetic-but-flaggable patterns: horizontal whitespace trailing at a line
// end, runs of 2+ spaces/tabs, and streaks of 2+ blank lines.
type excessWhitespaceOrNewline struct {
	maybeHasGap bool
}

func newExcessWhitespaceOrNewline() *excessWhitespaceOrNewline {
	return &excessWhitespaceOrNewline{}
}

func (d *excessWhitespaceOrNewline) Name() string { return "ExcessWhitespaceOrNewline" }

func (d *excessWhitespaceOrNewline) Observe(c rune, _ int) {
	if c == ' ' || c == '\t' || c == '\n' {
		d.maybeHasGap = true
	}
}

func (d *excessWhitespaceOrNewline) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasGap {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.Whitespace {
			continue
		}
		text := input[tok.Start:tok.End]
		for _, rng := range excessWhitespaceRanges(text) {
			spans = append(spans, spanAt(p, tokens, input, idx, tok.Start+rng[0], tok.Start+rng[1]))
		}
	}
	return finalizeSpans(sketch.ExcessWhitespaceOrNewline, input, spans)
}

// excessWhitespaceRanges scans one whitespace token's text and returns the
// byte ranges (relative to the token) worth flagging.
func excessWhitespaceRanges(text string) [][2]int {
	var out [][2]int
	n := len(text)
	i := 0
	for i < n {
		switch text[i] {
		case ' ', '\t':
			j := i
			for j < n && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			trailingAtLineEnd := j < n && text[j] == '\n'
			if trailingAtLineEnd || j-i >= 2 {
				out = append(out, [2]int{i, j})
			}
			i = j
		case '\n':
			j := i
			blankLines := 0
			for j < n {
				k := j
				for k < n && (text[k] == ' ' || text[k] == '\t') {
					k++
				}
				if k < n && text[k] == '\n' {
					blankLines++
					j = k + 1
					continue
				}
				break
			}
			if blankLines >= 2 {
				out = append(out, [2]int{i, j})
				i = j
			} else {
				i++
			}
		default:
			i++
		}
	}
	return out
}
