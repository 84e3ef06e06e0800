package pool

import "testing"

func TestShapePool_TokensCachedAcrossCalls(t *testing.T) {
	p := New(`{"a": 1}`)
	first := p.Tokens()
	second := p.Tokens()
	if len(first) != len(second) {
		t.Fatalf("token count changed between calls: %d vs %d", len(first), len(second))
	}
	if &first[0] != &second[0] {
		t.Fatalf("expected Tokens() to return the same underlying array on repeat calls")
	}
}

func TestShapePool_SkeletonAndLatticeMaterializeLazily(t *testing.T) {
	p := New(`{"a": [1, 2, 3]}`)
	skel := p.Skeleton()
	if skel == nil {
		t.Fatal("expected a non-nil skeleton")
	}
	lat := p.Lattice()
	if lat == nil {
		t.Fatal("expected a non-nil lattice")
	}
	// Same pool, same skeleton and lattice pointer on repeat access.
	if p.Skeleton() != skel {
		t.Fatal("expected Skeleton() to be memoized")
	}
	if p.Lattice() != lat {
		t.Fatal("expected Lattice() to be memoized")
	}
}

func TestShapePool_ClassForAndPathAtDelegate(t *testing.T) {
	input := `{"outer": {"inner": 1}}`
	p := New(input)
	tokens := p.Tokens()
	var innerValueTok int = -1
	for i, tok := range tokens {
		if input[tok.Start:tok.End] == "1" {
			innerValueTok = i
		}
	}
	if innerValueTok < 0 {
		t.Fatal("expected to find the numeric literal token")
	}
	keys, depth := p.PathAt(innerValueTok)
	if depth != uint8(len(keys)) {
		t.Fatalf("depth %d does not match len(keys) %d", depth, len(keys))
	}
	_ = p.ClassFor(tokens[innerValueTok].Start)
}

func TestShapePool_InputReturnsOriginal(t *testing.T) {
	const src = `{"x": true}`
	p := New(src)
	if p.Input() != src {
		t.Fatalf("Input() = %q, want %q", p.Input(), src)
	}
}
