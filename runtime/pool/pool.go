// Package pool provides ShapePool, the one-shot cache that binds a single
// input to its lexed tokens, recovered skeleton, and built lattice. A scan
// materializes each of these at most once and hands the same pool to every
// detector, so 23 detectors reading the same document never re-lex or
// re-build structure 23 times over.
package pool

import (
	"sync"

	lexer "github.com/aledsdavies/devcmd/runtime/lexer/v2"
	"github.com/aledsdavies/devcmd/runtime/lattice"
	"github.com/aledsdavies/devcmd/runtime/skeleton"
)

// ShapePool is frozen for the lifetime of one scan: New binds it to an
// input string, and every accessor lazily materializes (and then reuses)
// exactly one derived structure. A ShapePool is safe for concurrent read
// access from multiple detectors.
type ShapePool struct {
	input string

	tokensOnce sync.Once
	tokens     []lexer.Token

	skeletonOnce sync.Once
	skel         *skeleton.Skeleton

	latticeOnce sync.Once
	lat         *lattice.Lattice
}

// New binds a ShapePool to input. Nothing is lexed or built yet — that
// happens lazily, the first time a detector asks for it.
func New(input string) *ShapePool {
	return &ShapePool{input: input}
}

// Input returns the original input string this pool was built for.
func (p *ShapePool) Input() string {
	return p.input
}

// Tokens lexes the input on first call and returns the cached result on
// every subsequent call.
func (p *ShapePool) Tokens() []lexer.Token {
	p.tokensOnce.Do(func() {
		p.tokens = lexer.Lex(p.input)
	})
	return p.tokens
}

// Skeleton builds (once) the structural recovery over this pool's tokens.
func (p *ShapePool) Skeleton() *skeleton.Skeleton {
	p.skeletonOnce.Do(func() {
		p.skel = skeleton.Build(p.input, p.Tokens())
	})
	return p.skel
}

// Lattice builds (once) the byte-classification regions over this pool's
// tokens and skeleton.
func (p *ShapePool) Lattice() *lattice.Lattice {
	p.latticeOnce.Do(func() {
		p.lat = lattice.Build(p.Tokens(), p.Skeleton())
	})
	return p.lat
}

// ClassFor is a convenience passthrough to Lattice().ClassFor.
func (p *ShapePool) ClassFor(byteOffset int) lattice.RegionClass {
	return p.Lattice().ClassFor(byteOffset)
}

// PathAt is a convenience passthrough to Skeleton().PathAt, supplying this
// pool's own input and tokens.
func (p *ShapePool) PathAt(tokIdx int) ([]string, uint8) {
	return p.Skeleton().PathAt(p.Tokens(), p.input, tokIdx)
}
