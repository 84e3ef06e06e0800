package detect

import (
	"strings"

	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// incorrectBooleanLiteral flags miscased boolean spellings like `True` or
// `FALSE`. The lexer emits these as runs of one-byte Unknown tokens; this
// detector merges contiguous alphabetic runs and compares against the
// lowercased valid spellings.
type incorrectBooleanLiteral struct {
	maybeHasCapTorF bool
}

func newIncorrectBooleanLiteral() *incorrectBooleanLiteral { return &incorrectBooleanLiteral{} }

func (d *incorrectBooleanLiteral) Name() string { return "IncorrectBooleanLiteral" }

func (d *incorrectBooleanLiteral) Observe(c rune, _ int) {
	if c == 'T' || c == 'F' {
		d.maybeHasCapTorF = true
	}
}

func (d *incorrectBooleanLiteral) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasCapTorF {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		cls := p.ClassFor(tok.Start)
		if tok.Kind == lexer.Unknown && cls != lattice.Comment && cls != lattice.String && isAsciiAlpha(input[tok.Start]) {
			start := i
			end, text := alphaRun(tokens, input, i)
			lower := strings.ToLower(text)
			if (lower == "true" || lower == "false") && text != lower {
				spans = append(spans, spanAt(p, tokens, input, start, tokens[start].Start, tokens[end-1].End))
			}
			i = end
			continue
		}
		i++
	}
	return finalizeSpans(sketch.IncorrectBooleanLiteral, input, spans)
}

// alphaRun extends a run of single-byte Unknown tokens whose bytes are
// ASCII letters, starting at i, and returns its exclusive end token index
// plus the concatenated text.
func alphaRun(tokens []lexer.Token, input string, i int) (int, string) {
	end := i
	var b strings.Builder
	for end < len(tokens) {
		t := tokens[end]
		if t.Kind == lexer.Unknown && t.End == t.Start+1 && isAsciiAlpha(input[t.Start]) {
			b.WriteByte(input[t.Start])
			end++
			continue
		}
		break
	}
	return end, b.String()
}
