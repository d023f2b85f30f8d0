package parser

import "quill/lexer"

const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // > < >= <=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -X or !X or +X
	CALL        // myFunction(X)
	INDEX       // arr[i]
)

// MaxNesting bounds how deeply expressions may nest before the parser gives up.
const MaxNesting = 1024

var precedences = map[lexer.TokenKind]int{
	lexer.TokenEquals:         EQUALS,
	lexer.TokenNotEquals:      EQUALS,
	lexer.TokenLess:           LESSGREATER,
	lexer.TokenLessOrEqual:    LESSGREATER,
	lexer.TokenGreater:        LESSGREATER,
	lexer.TokenGreaterOrEqual: LESSGREATER,
	lexer.TokenPlus:           SUM,
	lexer.TokenMinus:          SUM,
	lexer.TokenSlash:          PRODUCT,
	lexer.TokenMultiply:       PRODUCT,
	lexer.TokenBraceOpen:      CALL,
	lexer.TokenBracketOpen:    INDEX,
}
