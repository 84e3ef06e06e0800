// Package skeleton recovers the minimal bracket/pair/element structure of a
// token stream. It is emphatically not an AST: it tracks just enough — a
// frame-open/close event log, coarse object-pair and array-element token
// spans, and mismatched-bracket culprits — to give the lattice and the
// detectors structural context without building or owning a real tree.
//
// The frame stack here descends from the same open/close event idea the
// devcmd parser used for its green tree (Event{Kind: Open/Close/Token}),
// narrowed to exactly two frame kinds because JSON only nests two ways.
package skeleton

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
)

// FrameKind distinguishes object frames from array frames on the context stack.
type FrameKind int

const (
	Obj FrameKind = iota
	Arr
)

// Frame is a chronological bracket-open event.
type Frame struct {
	Kind  FrameKind
	Start int // byte offset of the opening bracket
}

// TokenSpan is a half-open token-index range [Start, End).
type TokenSpan struct {
	Start int
	End   int
}

// ObjPair is one discovered key/value pair, expressed as token-index spans.
// Key is always exactly one StringLit token; Value spans from its first
// token to its last significant token, trailing whitespace/comments trimmed.
type ObjPair struct {
	KeySpan   TokenSpan
	ValueSpan TokenSpan
}

// ArrayElem is one discovered array element's token-index span.
type ArrayElem struct {
	Span TokenSpan
}

// Skeleton is the minimal structural recovery built from one token stream.
type Skeleton struct {
	Frames            []Frame
	ObjPairs          []ObjPair
	ArrElems          []ArrayElem
	BracketMismatches []int // byte offsets of unmatched closers / dangling openers
}

type objState struct {
	keyTok     int // token index of the key StringLit, -1 if none yet
	valueStart int // token index where the value begins, -1 if none yet
	valueDepth int
}

type arrState struct {
	elemStart int // token index where the current element begins, -1 if none
	elemDepth int
}

type frameState struct {
	kind       FrameKind
	startByte  int // byte offset of this frame's opening bracket
	obj        objState
	arr        arrState
}

// Build consumes the token stream and reconstructs the skeleton. input is
// accepted for symmetry with the Rust original and possible future key
// slicing, but Build itself never slices text — PathAt does that lazily.
func Build(input string, tokens []lexer.Token) *Skeleton {
	_ = input
	skel := &Skeleton{}
	var stack []*frameState

	prevSignificant := func(from int) int {
		for i := from; i >= 0; i-- {
			if tokens[i].Significant() {
				return i
			}
		}
		if from < 0 {
			return 0
		}
		return from
	}

	closePendingPair := func(fs *frameState, endIdx int) {
		if fs.obj.keyTok >= 0 && fs.obj.valueStart >= 0 {
			skel.ObjPairs = append(skel.ObjPairs, ObjPair{
				KeySpan:   TokenSpan{fs.obj.keyTok, fs.obj.keyTok + 1},
				ValueSpan: TokenSpan{fs.obj.valueStart, endIdx + 1},
			})
		}
	}
	closePendingElem := func(fs *frameState, endIdx int) {
		if fs.arr.elemStart >= 0 {
			skel.ArrElems = append(skel.ArrElems, ArrayElem{
				Span: TokenSpan{fs.arr.elemStart, endIdx + 1},
			})
		}
	}

	for i, tok := range tokens {
		depth := len(stack)
		switch tok.Kind {
		case lexer.LBrace, lexer.LBracket:
			if depth > 0 {
				top := stack[depth-1]
				if top.kind == Obj && top.obj.keyTok >= 0 && top.obj.valueStart < 0 {
					top.obj.valueStart = i
					top.obj.valueDepth = depth
				} else if top.kind == Arr && top.arr.elemStart < 0 {
					top.arr.elemStart = i
					top.arr.elemDepth = depth
				}
			}
			nf := &frameState{startByte: tok.Start, obj: objState{keyTok: -1, valueStart: -1}, arr: arrState{elemStart: -1}}
			if tok.Kind == lexer.LBrace {
				nf.kind = Obj
				skel.Frames = append(skel.Frames, Frame{Kind: Obj, Start: tok.Start})
			} else {
				nf.kind = Arr
				skel.Frames = append(skel.Frames, Frame{Kind: Arr, Start: tok.Start})
			}
			stack = append(stack, nf)

		case lexer.RBrace:
			if depth > 0 && stack[depth-1].kind == Obj {
				fs := stack[depth-1]
				stack = stack[:depth-1]
				closePendingPair(fs, prevSignificant(i-1))
			} else {
				skel.BracketMismatches = append(skel.BracketMismatches, tok.Start)
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == Arr && stack[len(stack)-1].arr.elemStart >= 0 {
				fs := stack[len(stack)-1]
				closePendingElem(fs, prevSignificant(i-1))
				fs.arr.elemStart = -1
			}

		case lexer.RBracket:
			if depth > 0 && stack[depth-1].kind == Arr {
				fs := stack[depth-1]
				stack = stack[:depth-1]
				closePendingElem(fs, prevSignificant(i-1))
			} else {
				skel.BracketMismatches = append(skel.BracketMismatches, tok.Start)
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == Arr && stack[len(stack)-1].arr.elemStart >= 0 {
				fs := stack[len(stack)-1]
				closePendingElem(fs, prevSignificant(i-1))
				fs.arr.elemStart = -1
			}

		case lexer.StringLit:
			if depth > 0 {
				top := stack[depth-1]
				if top.kind == Obj {
					if top.obj.keyTok < 0 {
						top.obj.keyTok = i
					} else if top.obj.valueStart < 0 {
						top.obj.valueStart = i
						top.obj.valueDepth = depth
					}
				} else if top.kind == Arr && top.arr.elemStart < 0 {
					top.arr.elemStart = i
					top.arr.elemDepth = depth
				}
			}

		case lexer.Colon:
			if depth > 0 {
				top := stack[depth-1]
				if top.kind == Obj && top.obj.keyTok >= 0 {
					top.obj.valueStart = -1 // wait for the next significant token
				}
			}

		case lexer.Comma:
			if depth > 0 {
				top := stack[depth-1]
				if top.kind == Obj {
					if top.obj.keyTok >= 0 && top.obj.valueStart >= 0 && top.obj.valueDepth == depth {
						closePendingPair(top, prevSignificant(i-1))
						top.obj.keyTok = -1
						top.obj.valueStart = -1
					}
				} else if top.kind == Arr {
					if top.arr.elemStart >= 0 && top.arr.elemDepth == depth {
						closePendingElem(top, prevSignificant(i-1))
						top.arr.elemStart = -1
					}
				}
			}

		case lexer.Whitespace, lexer.Comment:
			// insignificant, no state change

		default: // True, False, Null, NumberLit, Unknown, Eof
			if depth > 0 {
				top := stack[depth-1]
				if top.kind == Obj {
					if top.obj.keyTok >= 0 && top.obj.valueStart < 0 {
						top.obj.valueStart = i
						top.obj.valueDepth = depth
					}
				} else if top.kind == Arr {
					if top.arr.elemStart < 0 {
						top.arr.elemStart = i
						top.arr.elemDepth = depth
					}
				}
			}
		}
	}

	// EOF finalization: close whatever pairs/elements are left pending, then
	// record one mismatch per still-open frame (dangling openers), using the
	// byte offset each frame was pushed with.
	lastIdx := len(tokens) - 1
	if lastIdx < 0 {
		lastIdx = 0
	}
	for _, fs := range stack {
		if fs.kind == Obj {
			closePendingPair(fs, prevSignificant(lastIdx))
		} else {
			closePendingElem(fs, prevSignificant(lastIdx))
		}
	}
	for _, fs := range stack {
		skel.BracketMismatches = append(skel.BracketMismatches, fs.startByte)
	}

	return skel
}

// PathAt returns the parent key path (outermost to innermost) and depth for
// the object/array containing token index tokIdx, by selecting every
// ObjPair whose value span contains tokIdx and reading each key's text
// straight out of input. O(pairs-containing-tokIdx + depth), acceptable for
// typical document shapes per the design note in spec.md §9.
func (s *Skeleton) PathAt(tokens []lexer.Token, input string, tokIdx int) ([]string, uint8) {
	type hit struct {
		start int
		pair  *ObjPair
	}
	var hits []hit
	for i := range s.ObjPairs {
		p := &s.ObjPairs[i]
		if p.ValueSpan.Start <= tokIdx && tokIdx < p.ValueSpan.End {
			hits = append(hits, hit{p.ValueSpan.Start, p})
		}
	}
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].start < hits[i].start {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}
	keys := make([]string, 0, len(hits))
	for _, h := range hits {
		keyTok := tokens[h.pair.KeySpan.Start]
		s0 := keyTok.Start + 1
		e0 := keyTok.End - 1
		if e0 >= s0 && e0 <= len(input) {
			keys = append(keys, input[s0:e0])
		}
	}
	return keys, uint8(len(keys))
}
