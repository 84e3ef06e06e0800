package v2

import "testing"

// Byte offsets, not rune/column positions, are the only coordinate system
// the pipeline uses downstream (skeleton, lattice, sketch spans), so the
// lexer is tested against multi-byte UTF-8 content explicitly here.
func TestLex_MultiByteStringOffsets(t *testing.T) {
	input := `{"k":"héllo"}`
	tokens := Lex(input)
	assertCoverage(t, input, tokens)

	var str Token
	found := false
	for _, tok := range tokens {
		if tok.Kind == StringLit && tokenText(input, tok) == `"héllo"` {
			str = tok
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find the string literal token, got %+v", tokens)
	}
	if input[str.Start:str.End] != `"héllo"` {
		t.Fatalf("byte span %d:%d does not round-trip to the string text", str.Start, str.End)
	}
}

func TestLex_EscapedQuoteDoesNotEndString(t *testing.T) {
	input := `"a\"b"`
	tokens := Lex(input)
	if tokens[0].Kind != StringLit || tokens[0].End != len(input) {
		t.Fatalf("expected the whole input to be one string literal, got %+v", tokens[0])
	}
}

func TestLex_BackslashAtEndOfInputIsUnterminated(t *testing.T) {
	input := `"a\`
	tokens := Lex(input)
	// trailing backslash escapes past EOF; no closing quote is ever found.
	if tokens[0].Kind != Unknown {
		t.Fatalf("expected Unknown for an unterminated escaped string, got %+v", tokens[0])
	}
	assertCoverage(t, input, tokens)
}

func TestLex_AdjacentTokensShareExactBoundary(t *testing.T) {
	input := "{\"a\":1,\"b\":2}"
	tokens := Lex(input)
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].End != tokens[i].Start {
			t.Fatalf("token %d ends at %d but token %d starts at %d", i-1, tokens[i-1].End, i, tokens[i].Start)
		}
	}
}
