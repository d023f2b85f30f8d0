package lexer

import (
	"testing"

	"github.com/go-test/deep"
)

func literals(tokens []Token) []LiteralToken {
	out := make([]LiteralToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.LiteralToken)
	}
	return out
}

func TestTokenize(t *testing.T) {
	input := `let five = 5;
let add = fn(x, y) { x + y };
# comment line
!-/*5 <= >= == != < >
if (5 < 10) { return true } else { return false }
while (x) { break; }
"foo bar" [1, 2]; {"a": 1}`

	expected := []LiteralToken{
		{Kind: TokenLet, Text: "let"},
		{Kind: TokenIdentifier, Text: "five"},
		{Kind: TokenAssign, Text: "="},
		{Kind: TokenInt, Text: "5"},
		{Kind: TokenSemiColon, Text: ";"},
		{Kind: TokenLet, Text: "let"},
		{Kind: TokenIdentifier, Text: "add"},
		{Kind: TokenAssign, Text: "="},
		{Kind: TokenFn, Text: "fn"},
		{Kind: TokenBraceOpen, Text: "("},
		{Kind: TokenIdentifier, Text: "x"},
		{Kind: TokenComma, Text: ","},
		{Kind: TokenIdentifier, Text: "y"},
		{Kind: TokenBraceClose, Text: ")"},
		{Kind: TokenCurlyBraceOpen, Text: "{"},
		{Kind: TokenIdentifier, Text: "x"},
		{Kind: TokenPlus, Text: "+"},
		{Kind: TokenIdentifier, Text: "y"},
		{Kind: TokenCurlyBraceClose, Text: "}"},
		{Kind: TokenSemiColon, Text: ";"},
		{Kind: TokenExclamation, Text: "!"},
		{Kind: TokenMinus, Text: "-"},
		{Kind: TokenSlash, Text: "/"},
		{Kind: TokenMultiply, Text: "*"},
		{Kind: TokenInt, Text: "5"},
		{Kind: TokenLessOrEqual, Text: "<="},
		{Kind: TokenGreaterOrEqual, Text: ">="},
		{Kind: TokenEquals, Text: "=="},
		{Kind: TokenNotEquals, Text: "!="},
		{Kind: TokenLess, Text: "<"},
		{Kind: TokenGreater, Text: ">"},
		{Kind: TokenIf, Text: "if"},
		{Kind: TokenBraceOpen, Text: "("},
		{Kind: TokenInt, Text: "5"},
		{Kind: TokenLess, Text: "<"},
		{Kind: TokenInt, Text: "10"},
		{Kind: TokenBraceClose, Text: ")"},
		{Kind: TokenCurlyBraceOpen, Text: "{"},
		{Kind: TokenReturn, Text: "return"},
		{Kind: TokenTrue, Text: "true"},
		{Kind: TokenCurlyBraceClose, Text: "}"},
		{Kind: TokenElse, Text: "else"},
		{Kind: TokenCurlyBraceOpen, Text: "{"},
		{Kind: TokenReturn, Text: "return"},
		{Kind: TokenFalse, Text: "false"},
		{Kind: TokenCurlyBraceClose, Text: "}"},
		{Kind: TokenWhile, Text: "while"},
		{Kind: TokenBraceOpen, Text: "("},
		{Kind: TokenIdentifier, Text: "x"},
		{Kind: TokenBraceClose, Text: ")"},
		{Kind: TokenCurlyBraceOpen, Text: "{"},
		{Kind: TokenBreak, Text: "break"},
		{Kind: TokenSemiColon, Text: ";"},
		{Kind: TokenCurlyBraceClose, Text: "}"},
		{Kind: TokenString, Text: "foo bar"},
		{Kind: TokenBracketOpen, Text: "["},
		{Kind: TokenInt, Text: "1"},
		{Kind: TokenComma, Text: ","},
		{Kind: TokenInt, Text: "2"},
		{Kind: TokenBracketClose, Text: "]"},
		{Kind: TokenSemiColon, Text: ";"},
		{Kind: TokenCurlyBraceOpen, Text: "{"},
		{Kind: TokenString, Text: "a"},
		{Kind: TokenColon, Text: ":"},
		{Kind: TokenInt, Text: "1"},
		{Kind: TokenCurlyBraceClose, Text: "}"},
		{Kind: TokenEOF, Text: ""},
	}

	tokens := NewLexer("", input).Tokenize()

	if diff := deep.Equal(literals(tokens), expected); diff != nil {
		t.Error(diff)
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := NewLexer("", "let x\n  = 10").Tokenize()

	expected := []Token{
		{LiteralToken: LiteralToken{Kind: TokenLet, Text: "let"}, Row: 1, Col: 1},
		{LiteralToken: LiteralToken{Kind: TokenIdentifier, Text: "x"}, Row: 1, Col: 5},
		{LiteralToken: LiteralToken{Kind: TokenAssign, Text: "="}, Row: 2, Col: 3},
		{LiteralToken: LiteralToken{Kind: TokenInt, Text: "10"}, Row: 2, Col: 5},
		{LiteralToken: LiteralToken{Kind: TokenEOF, Text: ""}, Row: 2, Col: 7},
	}

	if diff := deep.Equal(tokens, expected); diff != nil {
		t.Error(diff)
	}
}

func TestStringEscapes(t *testing.T) {
	tokens := NewLexer("", `"a\"b\n\tc\\"`).Tokenize()

	if tokens[0].Kind != TokenString {
		t.Fatalf("expected string token, got %q", tokens[0].Kind)
	}
	if tokens[0].Text != "a\"b\n\tc\\" {
		t.Errorf("unexpected string text %q", tokens[0].Text)
	}
}

func TestErrorTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{input: `"never closed`, kind: TokenError},
		{input: `@`, kind: TokenError},
		{input: `$x`, kind: TokenError},
	}

	for _, tt := range tests {
		tok := NewLexer("", tt.input).NextToken()
		if tok.Kind != tt.kind {
			t.Errorf("input %q: expected kind %q, got %q", tt.input, tt.kind, tok.Kind)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := NewLexer("", "x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != TokenEOF {
			t.Fatalf("expected end of file, got %q", tok.Kind)
		}
	}
}
