package lexer

import "fmt"

type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Identifiers + literals
	IDENT
	INT

	// Keywords
	KW_RETURN

	// Symbols
	LPAREN // (
	RPAREN // )
	SEMI   // ;
	ASSIGN // =

	// Arithmetic
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
)

var typeNames = map[TokenType]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	IDENT:     "IDENT",
	INT:       "INT",
	KW_RETURN: "RETURN",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMI:      ";",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
}

func (t TokenType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// symbols maps each single-character symbol to its token type.
var symbols = map[rune]TokenType{
	'(': LPAREN,
	')': RPAREN,
	';': SEMI,
	'=': ASSIGN,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
}

// Token is one lexeme. Lex always holds the literal source text; for EOF it
// is "EOF" so diagnostics have something to name.
type Token struct {
	Type  TokenType
	Lex   string
	Value int64 // INT only
	Pos   int   // byte offset into the source
	Line  int
	Col   int
}

func (t Token) Is(op TokenType) bool { return t.Type == op }

// IsSymbol reports whether t is one of the single-character symbols.
func (t Token) IsSymbol() bool { return t.Type >= LPAREN && t.Type <= SLASH }

func (t Token) String() string {
	switch t.Type {
	case INT:
		return fmt.Sprintf("INT(%d)", t.Value)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Lex)
	case KW_RETURN, EOF, ILLEGAL:
		return t.Type.String()
	default:
		return fmt.Sprintf("SYMBOL(%s)", t.Lex)
	}
}
