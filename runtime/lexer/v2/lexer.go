package v2

import "strings"

// Lex scans input and returns a Token slice that covers the whole byte
// range with no gaps or overlaps, terminated by a zero-width Eof token.
//
// Single forward pass, one byte of lookahead per decision. Numbers are
// parsed loosely (grammar validity is a detector's job, InvalidNumberFormat).
// An unterminated block comment consumes to EOF; an unterminated string
// becomes a one-byte Unknown token at its opening quote. Any byte that matches nothing recognized becomes a one-byte
// Unknown token — the lexer never rejects input.
func Lex(input string) []Token {
	b := []byte(input)
	n := len(b)
	tokens := make([]Token, 0, n/2+1)
	i := 0

	for i < n {
		start := i
		c := b[i]

		switch {
		case c == '{':
			tokens = append(tokens, Token{LBrace, start, start + 1})
			i++
		case c == '}':
			tokens = append(tokens, Token{RBrace, start, start + 1})
			i++
		case c == '[':
			tokens = append(tokens, Token{LBracket, start, start + 1})
			i++
		case c == ']':
			tokens = append(tokens, Token{RBracket, start, start + 1})
			i++
		case c == ':':
			tokens = append(tokens, Token{Colon, start, start + 1})
			i++
		case c == ',':
			tokens = append(tokens, Token{Comma, start, start + 1})
			i++
		case c == '"':
			end, ok := lexString(b, start)
			if ok {
				tokens = append(tokens, Token{StringLit, start, end})
				i = end
			} else {
				tokens = append(tokens, Token{Unknown, start, start + 1})
				i = start + 1
			}
		case c == '-' || isDigit(c):
			end, ok := lexNumber(b, start)
			if ok {
				tokens = append(tokens, Token{NumberLit, start, end})
				i = end
			} else {
				// '-' not followed by a digit: emit it alone, re-scan the rest.
				tokens = append(tokens, Token{Unknown, start, start + 1})
				i = start + 1
			}
		case c == 't' && hasPrefixAt(input, start, "true"):
			tokens = append(tokens, Token{True, start, start + 4})
			i = start + 4
		case c == 'f' && hasPrefixAt(input, start, "false"):
			tokens = append(tokens, Token{False, start, start + 5})
			i = start + 5
		case c == 'n' && hasPrefixAt(input, start, "null"):
			tokens = append(tokens, Token{Null, start, start + 4})
			i = start + 4
		case c == '/':
			end := lexComment(b, start)
			if end > start {
				tokens = append(tokens, Token{Comment, start, end})
				i = end
			} else {
				tokens = append(tokens, Token{Unknown, start, start + 1})
				i = start + 1
			}
		case isSpace(c):
			end := start + 1
			for end < n && isSpace(b[end]) {
				end++
			}
			tokens = append(tokens, Token{Whitespace, start, end})
			i = end
		default:
			tokens = append(tokens, Token{Unknown, start, start + 1})
			i = start + 1
		}
	}

	tokens = append(tokens, Token{Eof, n, n})
	return tokens
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func hasPrefixAt(s string, at int, prefix string) bool {
	return strings.HasPrefix(s[at:], prefix)
}

// lexString scans a string literal starting at b[start] == '"'. It returns
// the exclusive end offset and whether a closing quote was found before
// EOF. '\' toggles an escaped flag for exactly one following byte — the
// escape's own validity is InvalidEscapeSequence's job, not the lexer's.
func lexString(b []byte, start int) (end int, ok bool) {
	n := len(b)
	idx := start + 1
	escaped := false
	for idx < n {
		c := b[idx]
		if escaped {
			escaped = false
			idx++
			continue
		}
		switch c {
		case '\\':
			escaped = true
			idx++
		case '"':
			return idx + 1, true
		default:
			idx++
		}
	}
	return start + 1, false
}

// lexNumber scans a loose JSON number grammar: optional '-', an integer
// part, an optional '.digits' fraction, an optional '[eE][+-]?digits'
// exponent. A leading '-' with no following digit is not consumed here.
func lexNumber(b []byte, start int) (end int, ok bool) {
	n := len(b)
	idx := start
	if b[idx] == '-' {
		idx++
		if idx >= n || !isDigit(b[idx]) {
			return start, false
		}
	}
	if b[idx] == '0' {
		idx++
	} else {
		for idx < n && isDigit(b[idx]) {
			idx++
		}
	}
	if idx < n && b[idx] == '.' {
		idx++
		for idx < n && isDigit(b[idx]) {
			idx++
		}
	}
	if idx < n && (b[idx] == 'e' || b[idx] == 'E') {
		idx++
		if idx < n && (b[idx] == '+' || b[idx] == '-') {
			idx++
		}
		for idx < n && isDigit(b[idx]) {
			idx++
		}
	}
	return idx, true
}

// lexComment scans a "//" line comment (to next '\n' or EOF) or a "/* */"
// block comment (to the next "*/" or EOF, never nesting). Returns start if
// b[start:] is neither — the caller then emits a one-byte Unknown for '/'.
func lexComment(b []byte, start int) int {
	n := len(b)
	if start+1 >= n {
		return start
	}
	switch b[start+1] {
	case '/':
		idx := start + 2
		for idx < n && b[idx] != '\n' {
			idx++
		}
		return idx
	case '*':
		idx := start + 2
		for idx+1 < n {
			if b[idx] == '*' && b[idx+1] == '/' {
				return idx + 2
			}
			idx++
		}
		return n
	default:
		return start
	}
}
