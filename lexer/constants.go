package lexer

type Operator = string

var (
	Keywords = map[string]TokenKind{
		"let":    TokenLet,
		"if":     TokenIf,
		"else":   TokenElse,
		"fn":     TokenFn,
		"while":  TokenWhile,
		"return": TokenReturn,
		"break":  TokenBreak,
		"true":   TokenTrue,
		"false":  TokenFalse,
	}

	BinOperators = map[TokenKind]Operator{
		TokenEquals:         "==",
		TokenGreater:        ">",
		TokenGreaterOrEqual: ">=",
		TokenLess:           "<",
		TokenLessOrEqual:    "<=",
		TokenNotEquals:      "!=",
		TokenMultiply:       "*",
		TokenSlash:          "/",
		TokenPlus:           "+",
		TokenMinus:          "-",
	}

	UnaryOperators = map[TokenKind]Operator{
		TokenExclamation: "!",
		TokenMinus:       "-",
		TokenPlus:        "+",
	}

	// single rune tokens that never start a longer operator
	singles = map[rune]TokenKind{
		'{': TokenCurlyBraceOpen,
		'}': TokenCurlyBraceClose,
		'[': TokenBracketOpen,
		']': TokenBracketClose,
		'(': TokenBraceOpen,
		')': TokenBraceClose,
		':': TokenColon,
		';': TokenSemiColon,
		',': TokenComma,
		'+': TokenPlus,
		'-': TokenMinus,
		'*': TokenMultiply,
		'/': TokenSlash,
	}
)
