package lexer

import (
	"strings"
	"unicode"
)

func NewLexer(filePath string, content string) *Lexer {
	lexer := Lexer{
		Content:  []rune(content),
		FilePath: filePath,
		Row:      1,
		Col:      1,
		Cur:      0,
	}
	return &lexer
}

func (l *Lexer) readChar() {
	if l.Cur >= len(l.Content) {
		// reach end of file
		return
	}

	char := l.Content[l.Cur]

	switch char {
	case '\n':
		l.Row++
		l.Col = 1
	default:
		l.Col++
	}

	// increment to deal with the next char
	l.Cur++
}

func (l *Lexer) peekChar() rune {
	if l.Cur+1 >= len(l.Content) {
		return 0
	}
	return l.Content[l.Cur+1]
}

// NextToken returns the next token of the input, once the input is exhausted
// every call returns an end of file token.
func (l *Lexer) NextToken() Token {
	l.skipWhiteSpace()
	l.skipComment()

	token := Token{
		Row: l.Row,
		Col: l.Col,
	}

	if l.Cur >= len(l.Content) {
		token.LiteralToken = LiteralToken{
			Kind: TokenEOF,
			Text: "",
		}
		return token
	}

	char := l.Content[l.Cur]

	if kind, ok := singles[char]; ok {
		l.readChar()
		token.LiteralToken = LiteralToken{
			Kind: kind,
			Text: string(char),
		}
		return token
	}

	switch char {
	case '=':
		token.LiteralToken = l.withEquals(TokenAssign, TokenEquals)
	case '!':
		token.LiteralToken = l.withEquals(TokenExclamation, TokenNotEquals)
	case '<':
		token.LiteralToken = l.withEquals(TokenLess, TokenLessOrEqual)
	case '>':
		token.LiteralToken = l.withEquals(TokenGreater, TokenGreaterOrEqual)
	case '"':
		return l.readString()
	default:
		if isLetter(char) {
			return l.readIdentifier()
		} else if isDigit(char) {
			return l.readNumber()
		} else {
			l.readChar()
			token.LiteralToken = LiteralToken{
				Kind: TokenError,
				Text: "illegal character " + string(char),
			}
		}
	}

	return token
}

// withEquals consumes a one rune operator, or its two rune form when the
// next rune is '='.
func (l *Lexer) withEquals(single, double TokenKind) LiteralToken {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return LiteralToken{Kind: double, Text: double}
	}
	l.readChar()
	return LiteralToken{Kind: single, Text: single}
}

func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func isLetter(char rune) bool {
	return unicode.IsLetter(char) || char == '_'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

func (l *Lexer) readIdentifier() Token {
	startPos := l.Cur
	// save them to return
	row := l.Row
	col := l.Col

	for l.Cur < len(l.Content) {
		char := l.Content[l.Cur]
		if isLetter(char) || isDigit(char) {
			l.readChar()
		} else {
			break
		}
	}

	text := string(l.Content[startPos:l.Cur])

	if tokenKind, isKeyword := Keywords[text]; isKeyword {
		return Token{LiteralToken: LiteralToken{
			Kind: tokenKind,
			Text: text,
		}, Row: row, Col: col}
	}

	return Token{
		LiteralToken: LiteralToken{
			Kind: TokenIdentifier,
			Text: text,
		},
		Row: row,
		Col: col,
	}
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

func (l *Lexer) readString() Token {
	row, col := l.Row, l.Col
	l.readChar() // skip the opening quote

	var out strings.Builder
	for l.Cur < len(l.Content) && l.Content[l.Cur] != '"' {
		char := l.Content[l.Cur]
		if char == '\\' && l.Cur+1 < len(l.Content) {
			if esc, ok := escapes[l.Content[l.Cur+1]]; ok {
				out.WriteRune(esc)
				l.readChar()
				l.readChar()
				continue
			}
		}
		out.WriteRune(char)
		l.readChar()
	}

	if l.Cur >= len(l.Content) {
		return Token{
			LiteralToken: LiteralToken{
				Kind: TokenError,
				Text: `unterminated string, missing closing quote (")`,
			},
			Row: row,
			Col: col,
		}
	}

	l.readChar() // consume the closing quote

	return Token{
		LiteralToken: LiteralToken{
			Kind: TokenString,
			Text: out.String(),
		},
		Row: row,
		Col: col,
	}
}

func (l *Lexer) readNumber() Token {
	startPos := l.Cur
	row := l.Row
	col := l.Col

	for l.Cur < len(l.Content) && isDigit(l.Content[l.Cur]) {
		l.readChar()
	}

	return Token{
		LiteralToken: LiteralToken{
			Kind: TokenInt,
			Text: string(l.Content[startPos:l.Cur]),
		},
		Row: row,
		Col: col,
	}
}

func (l *Lexer) skipComment() {
	for l.Cur < len(l.Content) && l.Content[l.Cur] == '#' {
		for l.Cur < len(l.Content) && l.Content[l.Cur] != '\n' {
			l.readChar()
		}
		l.skipWhiteSpace()
	}
}

func (l *Lexer) skipWhiteSpace() {
	for l.Cur < len(l.Content) && unicode.IsSpace(l.Content[l.Cur]) {
		l.readChar()
	}
}
