package detect

import (
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// duplicateKey flags a key whose text exactly repeats a prior key within
// the same object (same depth + parent key chain). Matches
// orig:sketches/duplicate_key.rs in emitting plain Spans rather than the
// KeyPair-shaped payload the abstract data model implies — see DESIGN.md.
type duplicateKey struct {
	maybeHasQuote bool
}

func newDuplicateKey() *duplicateKey { return &duplicateKey{} }

func (d *duplicateKey) Name() string { return "DuplicateKey" }

func (d *duplicateKey) Observe(c rune, _ int) {
	if c == '"' {
		d.maybeHasQuote = true
	}
}

type objectIdentity struct {
	depth  uint8
	parent string
}

func (d *duplicateKey) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasQuote {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()
	var spans []sketch.SpanContext

	seen := make(map[objectIdentity]map[string]bool)
	for _, pair := range skel.ObjPairs {
		keyTok := tokens[pair.KeySpan.Start]
		keyText := stringLitText(input, keyTok)
		parentKeys, depth := skel.PathAt(tokens, input, pair.KeySpan.Start)
		id := objectIdentity{depth: depth, parent: parentKeyString(parentKeys)}
		if seen[id] == nil {
			seen[id] = make(map[string]bool)
		}
		if seen[id][keyText] {
			spans = append(spans, spanAt(p, tokens, input, pair.KeySpan.Start, keyTok.Start, keyTok.End))
		} else {
			seen[id][keyText] = true
		}
	}
	return finalizeSpans(sketch.DuplicateKey, input, spans)
}
