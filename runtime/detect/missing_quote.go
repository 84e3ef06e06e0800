package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// missingQuote flags bareword tokens (`[A-Za-z0-9_]+`) sitting immediately
// before a `:` (an unquoted key) or immediately after one (an unquoted
// string value).
type missingQuote struct {
	maybeHasColon bool
}

func newMissingQuote() *missingQuote { return &missingQuote{} }

func (d *missingQuote) Name() string { return "MissingQuote" }

func (d *missingQuote) Observe(c rune, _ int) {
	if c == ':' {
		d.maybeHasColon = true
	}
}

func (d *missingQuote) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasColon {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for i, tok := range tokens {
		if tok.Kind != lexer.Unknown {
			continue
		}
		snippet := input[tok.Start:tok.End]
		if !isBareword(snippet) {
			continue
		}

		j := i + 1
		for j < len(tokens) && tokens[j].Kind == lexer.Whitespace {
			j++
		}
		if j < len(tokens) && tokens[j].Kind == lexer.Colon {
			spans = append(spans, spanAt(p, tokens, input, i, tok.Start, tok.End))
			continue
		}

		k := i
		for k > 0 {
			k--
			if tokens[k].Kind == lexer.Whitespace {
				continue
			}
			if tokens[k].Kind == lexer.Colon {
				spans = append(spans, spanAt(p, tokens, input, i, tok.Start, tok.End))
			}
			break
		}
	}
	return finalizeSpans(sketch.MissingQuote, input, spans)
}

func isBareword(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAsciiAlphaNumOrUnderscore(s[i]) {
			return false
		}
	}
	return true
}
