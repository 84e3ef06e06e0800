package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// spanAt builds a SpanContext for [start,end) using the path at tokIdx.
func spanAt(p *pool.ShapePool, tokens []lexer.Token, input string, tokIdx, start, end int) sketch.SpanContext {
	keys, depth := p.Skeleton().PathAt(tokens, input, tokIdx)
	return sketch.NewSpanContext(input, start, end, depth, keys)
}

// excludedClass reports whether a byte offset falls in a region these
// detectors never fire inside (comments and string literals), unless a
// detector's contract explicitly targets that class.
func excludedClass(p *pool.ShapePool, offset int) bool {
	switch p.ClassFor(offset) {
	case lattice.Comment, lattice.String:
		return true
	default:
		return false
	}
}

func isAsciiAlphaNumOrUnderscore(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isAsciiAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAsciiHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isAsciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func finalizeSpans(kind sketch.Kind, input string, spans []sketch.SpanContext) *sketch.Sketch {
	if len(spans) == 0 {
		return nil
	}
	merged := sketch.MergeAdjacentSingleCharSpans(input, spans)
	return &sketch.Sketch{Kind: kind, Payload: sketch.SpansPayload(merged)}
}

// finalizeSpansNoMerge skips the single-char merge pass. ImproperNesting
// uses it to stay distinguishable from UnbalancedBracket even though both
// read the same skeleton.BracketMismatches list; ExtraOrMissingBracketComplex
// uses it as well.
func finalizeSpansNoMerge(kind sketch.Kind, spans []sketch.SpanContext) *sketch.Sketch {
	if len(spans) == 0 {
		return nil
	}
	deduped := sketch.DedupSpans(spans)
	return &sketch.Sketch{Kind: kind, Payload: sketch.SpansPayload(deduped)}
}

// prevSignificant returns the index of the nearest Significant token at or
// before idx-1, or -1 if none exists.
func prevSignificant(tokens []lexer.Token, idx int) int {
	for i := idx - 1; i >= 0; i-- {
		if tokens[i].Significant() {
			return i
		}
	}
	return -1
}

// nextSignificant returns the index of the nearest Significant token at or
// after idx+1, or -1 if none exists.
func nextSignificant(tokens []lexer.Token, idx int) int {
	for i := idx + 1; i < len(tokens); i++ {
		if tokens[i].Significant() {
			return i
		}
	}
	return -1
}

// tokenAt returns the index of the token starting at byte offset, or -1.
func tokenAt(tokens []lexer.Token, offset int) int {
	for i, tok := range tokens {
		if tok.Start == offset {
			return i
		}
	}
	return -1
}

// trimWhitespace narrows [start,end) by excluding leading/trailing ASCII
// whitespace bytes, collapsing to a zero-width span at end if the whole
// range is whitespace.
func trimWhitespace(input string, start, end int) (int, int) {
	for start < end && isSpaceByte(input[start]) {
		start++
	}
	for end > start && isSpaceByte(input[end-1]) {
		end--
	}
	return start, end
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func parentKeyString(keys []string) string {
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += "\x1d"
		}
		s += k
	}
	return s
}
