package detect

import (
	"strconv"
	"strings"

	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// improperEncoding flags `\uXXXX` escapes whose code unit is a lone UTF-16
// surrogate (D800..DFFF) — valid hex, invalid as a standalone code point.
type improperEncoding struct {
	maybeHasU bool
}

func newImproperEncoding() *improperEncoding { return &improperEncoding{} }

func (d *improperEncoding) Name() string { return "ImproperEncoding" }

func (d *improperEncoding) Observe(c rune, _ int) {
	if c == 'u' {
		d.maybeHasU = true
	}
}

func (d *improperEncoding) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasU {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	var spans []sketch.SpanContext

	for idx, tok := range tokens {
		if tok.Kind != lexer.StringLit || p.ClassFor(tok.Start) != lattice.String {
			continue
		}
		if tok.End <= tok.Start+1 {
			continue
		}
		slice := input[tok.Start+1 : tok.End-1]
		rel := 0
		for {
			pos := strings.Index(slice[rel:], "\\u")
			if pos < 0 {
				break
			}
			escStart := rel + pos
			hstart := escStart + 2
			if hstart+4 <= len(slice) {
				hex := slice[hstart : hstart+4]
				if allHex(hex) {
					if v, err := strconv.ParseUint(hex, 16, 32); err == nil && v >= 0xD800 && v <= 0xDFFF {
						absStart := tok.Start + 1 + escStart
						absEnd := clamp(absStart+6, tok.End)
						spans = append(spans, spanAt(p, tokens, input, idx, absStart, absEnd))
					}
				}
			}
			rel = hstart + 4
			if rel >= len(slice) {
				break
			}
		}
	}
	return finalizeSpans(sketch.ImproperEncoding, input, spans)
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAsciiHexDigit(s[i]) {
			return false
		}
	}
	return true
}
