package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// LexError reports a character that starts no token. Lexing stops at the
// first one.
type LexError struct {
	Char rune
	Pos  int
	Line int
	Col  int
	Msg  string // set when the text was recognized but is unusable
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at %d:%d", e.Msg, e.Line, e.Col)
	}
	return fmt.Sprintf("cannot tokenize %q at %d:%d", e.Char, e.Line, e.Col)
}

type Lexer struct {
	src  string
	i    int // offset of the byte after ch
	pos  int // offset of ch
	ch   rune
	line int
	col  int
	err  *LexError
}

func New(src string) *Lexer {
	l := &Lexer{src: src, line: 1}
	l.read()
	return l
}

// Tokenize lexes all of src. The returned slice always ends in an EOF token
// unless an error is returned.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		t := l.Next()
		if t.Type == ILLEGAL {
			return nil, l.Err()
		}
		toks = append(toks, t)
		if t.Type == EOF {
			return toks, nil
		}
	}
}

// Err returns the error behind the last ILLEGAL token, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) read() {
	l.pos = l.i
	if l.i >= len(l.src) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.i:])
	l.ch = r
	l.i += w
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func isIdentStart(ch rune) bool { return unicode.IsLetter(ch) || ch == '_' }

func isIdentCont(ch rune) bool { return isIdentStart(ch) || unicode.IsDigit(ch) }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// Next returns the next token. After an ILLEGAL token the lexer is done and
// keeps returning ILLEGAL.
func (l *Lexer) Next() Token {
	if l.err != nil {
		return Token{Type: ILLEGAL, Lex: string(l.err.Char), Pos: l.err.Pos, Line: l.err.Line, Col: l.err.Col}
	}
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.read()
	}
	tok := Token{Pos: l.pos, Line: l.line, Col: l.col}
	if l.atEnd() {
		tok.Type, tok.Lex = EOF, "EOF"
		return tok
	}
	ch := l.ch
	if tt, ok := symbols[ch]; ok {
		tok.Type, tok.Lex = tt, string(ch)
		l.read()
		return tok
	}
	switch {
	case isIdentStart(ch):
		start := l.pos
		for !l.atEnd() && isIdentCont(l.ch) {
			l.read()
		}
		tok.Lex = l.src[start:l.pos]
		// only a whole run spells the keyword, so "returnx" stays an identifier
		if tok.Lex == "return" {
			tok.Type = KW_RETURN
		} else {
			tok.Type = IDENT
		}
	case isDigit(ch):
		start := l.pos
		for !l.atEnd() && isDigit(l.ch) {
			l.read()
		}
		tok.Lex = l.src[start:l.pos]
		v, err := strconv.ParseInt(tok.Lex, 10, 64)
		if err != nil {
			l.err = &LexError{Char: ch, Pos: tok.Pos, Line: tok.Line, Col: tok.Col, Msg: "integer literal out of range: " + tok.Lex}
			tok.Type = ILLEGAL
			return tok
		}
		tok.Type, tok.Value = INT, v
	default:
		l.err = &LexError{Char: ch, Pos: tok.Pos, Line: tok.Line, Col: tok.Col}
		tok.Type, tok.Lex = ILLEGAL, string(ch)
	}
	return tok
}
