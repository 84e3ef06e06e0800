package v2

import "testing"

// Bare alphabetic words that aren't an exact lowercase literal decompose into
// one Unknown token per byte — detectors (IncorrectBooleanLiteral,
// NullOrNoneLiteral, MissingQuote) are responsible for recognizing the
// resulting contiguous run, the lexer itself does no word-level grouping.
func TestLex_MistypedLiteralIsPerByteUnknown(t *testing.T) {
	tokens := Lex("True")
	if len(tokens) != 5 { // 4 bytes + Eof
		t.Fatalf("expected 4 Unknown bytes + Eof, got %+v", tokens)
	}
	for i := 0; i < 4; i++ {
		if tokens[i].Kind != Unknown || tokens[i].Len() != 1 {
			t.Errorf("byte %d: got %+v, want single-byte Unknown", i, tokens[i])
		}
	}
}

func TestLex_CaseSensitiveLiterals(t *testing.T) {
	for _, word := range []string{"TRUE", "False", "NULL", "Null", "nUll"} {
		tokens := Lex(word)
		if tokens[0].Kind == True || tokens[0].Kind == False || tokens[0].Kind == Null {
			t.Errorf("%q: exact literal kinds must only match the lowercase spelling, got %s", word, tokens[0].Kind)
		}
	}
}

func TestLex_UnknownBytesAreNeverFatal(t *testing.T) {
	input := "\x01\x02{}\xff"
	tokens := Lex(input)
	assertCoverage(t, input, tokens)
	if tokens[0].Kind != Unknown || tokens[1].Kind != Unknown {
		t.Fatalf("expected leading control bytes to be Unknown, got %+v", tokens[:2])
	}
}

func TestLex_PunctuationInsideUnknownRunStillSplits(t *testing.T) {
	// '$' is never a recognized byte; each occurrence is its own Unknown token.
	tokens := Lex("$ref")
	if tokens[0].Kind != Unknown || tokens[0].Len() != 1 {
		t.Fatalf("expected '$' as lone Unknown, got %+v", tokens[0])
	}
}
