package detect

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

type vkind int

const (
	vStr vkind = iota
	vNum
	vTrue
	vFalse
	vNull
	vObj
	vArr
	vOther
)

// mixedTypeInArray flags an array element whose coarse kind (string,
// number, bool, null, object, array) differs from the first element seen
// in the same array, identified by the array's own opening-bracket offset
// plus its structural path.
type mixedTypeInArray struct {
	maybeHasArray bool
}

func newMixedTypeInArray() *mixedTypeInArray { return &mixedTypeInArray{} }

func (d *mixedTypeInArray) Name() string { return "MixedTypeInArray" }

func (d *mixedTypeInArray) Observe(c rune, _ int) {
	if c == '[' {
		d.maybeHasArray = true
	}
}

type arrayIdentity struct {
	arrStart   int
	parentKeys string
	depth      uint8
}

func (d *mixedTypeInArray) Finalize(p *pool.ShapePool) *sketch.Sketch {
	if !d.maybeHasArray {
		return nil
	}
	tokens := p.Tokens()
	input := p.Input()
	skel := p.Skeleton()

	firstKind := make(map[arrayIdentity]vkind)
	var spans []sketch.SpanContext

	for _, elem := range skel.ArrElems {
		firstIdx := elem.Span.Start
		tok := tokens[firstIdx]
		kind := coarseKind(tok.Kind)
		if kind == vOther {
			continue
		}
		arrStart := findArrayStart(tokens, firstIdx)
		parentKeys, depth := skel.PathAt(tokens, input, firstIdx)
		id := arrayIdentity{arrStart: arrStart, parentKeys: parentKeyString(parentKeys), depth: depth}
		if existing, ok := firstKind[id]; !ok {
			firstKind[id] = kind
		} else if existing != kind {
			spans = append(spans, sketch.NewSpanContext(input, tok.Start, tok.End, depth, parentKeys))
		}
	}
	return finalizeSpans(sketch.MixedTypeInArray, input, spans)
}

func coarseKind(k lexer.Kind) vkind {
	switch k {
	case lexer.StringLit:
		return vStr
	case lexer.NumberLit:
		return vNum
	case lexer.True:
		return vTrue
	case lexer.False:
		return vFalse
	case lexer.Null:
		return vNull
	case lexer.LBrace:
		return vObj
	case lexer.LBracket:
		return vArr
	default:
		return vOther
	}
}

// findArrayStart walks backward from idx tracking bracket depth to find the
// byte offset of the `[` that opens the array idx's token belongs to.
func findArrayStart(tokens []lexer.Token, idx int) int {
	depth := 0
	for idx > 0 {
		idx--
		switch tokens[idx].Kind {
		case lexer.RBracket, lexer.RBrace:
			depth++
		case lexer.LBracket:
			if depth == 0 {
				return tokens[idx].Start
			}
			depth--
		case lexer.LBrace:
			if depth > 0 {
				depth--
			}
		}
	}
	return 0
}
