// Package lattice classifies every byte of an input into exactly one of a
// small set of semantic regions — Comment, String, BracketError, Key,
// Value, Gap, Unknown — under a fixed precedence, so that one detector's
// view of the input (e.g. "is this comma inside a string?") never has to
// re-derive structure another layer already knows.
package lattice

import (
	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/skeleton"
)

// RegionClass is the semantic class assigned to a byte range.
type RegionClass int

const (
	Unknown RegionClass = iota
	Gap
	Value
	Key
	String
	Comment
	BracketError
)

func precedence(c RegionClass) int { return int(c) }

// Region is a disjoint, half-open byte range sharing one RegionClass.
type Region struct {
	Class RegionClass
	Start int
	End   int
}

// Lattice is the ordered, disjoint set of Regions covering [0, len(input)).
type Lattice struct {
	Regions []Region
}

// Build assigns a tentative class per token (from its Kind, or from the
// skeleton's key/value spans), overrides any token starting at a bracket
// mismatch to BracketError, then merges adjacent same-class tokens into
// regions. Two classes that would apply to the same token combine by
// keeping the higher-precedence one.
func Build(tokens []lexer.Token, skel *skeleton.Skeleton) *Lattice {
	if len(tokens) <= 1 {
		// nothing but (at most) the zero-width Eof sentinel: no bytes to cover.
		return &Lattice{}
	}
	classes := make([]RegionClass, len(tokens))

	assign := func(i int, c RegionClass) {
		if precedence(c) > precedence(classes[i]) {
			classes[i] = c
		}
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case lexer.Comment:
			assign(i, Comment)
		case lexer.StringLit:
			assign(i, String)
		case lexer.Whitespace:
			assign(i, Gap)
		}
	}

	for _, pair := range skel.ObjPairs {
		for i := pair.KeySpan.Start; i < pair.KeySpan.End && i < len(classes); i++ {
			assign(i, Key)
		}
		for i := pair.ValueSpan.Start; i < pair.ValueSpan.End && i < len(classes); i++ {
			assign(i, Value)
		}
	}
	for _, elem := range skel.ArrElems {
		for i := elem.Span.Start; i < elem.Span.End && i < len(classes); i++ {
			assign(i, Value)
		}
	}

	mismatchSet := make(map[int]struct{}, len(skel.BracketMismatches))
	for _, b := range skel.BracketMismatches {
		mismatchSet[b] = struct{}{}
	}
	for i, tok := range tokens {
		if _, bad := mismatchSet[tok.Start]; bad {
			classes[i] = BracketError
		}
	}

	// Merge adjacent same-class tokens into regions, ignoring the trailing Eof.
	var regions []Region
	curClass := classes[0]
	curStart := tokens[0].Start
	for i := 1; i < len(tokens)-1; i++ {
		if classes[i] != curClass {
			regions = append(regions, Region{Class: curClass, Start: curStart, End: tokens[i].Start})
			curClass = classes[i]
			curStart = tokens[i].Start
		}
	}
	end := tokens[len(tokens)-1].Start // Eof.Start == len(input)
	regions = append(regions, Region{Class: curClass, Start: curStart, End: end})

	return &Lattice{Regions: regions}
}

// ClassFor returns the RegionClass of the unique region containing byte. A
// byte outside every region (never expected given the coverage invariant)
// classifies as Unknown.
func (l *Lattice) ClassFor(byteOffset int) RegionClass {
	for _, r := range l.Regions {
		if r.Start <= byteOffset && byteOffset < r.End {
			return r.Class
		}
	}
	return Unknown
}
