package parser

import (
	"fmt"

	"github.com/tinyrange/stackcc/internal/ast"
	"github.com/tinyrange/stackcc/internal/lexer"
)

// UnexpectedTokenError is returned for the first token that fits no
// alternative of the production being parsed.
type UnexpectedTokenError struct {
	Tok lexer.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token: %s at %d:%d", e.Tok.Lex, e.Tok.Line, e.Tok.Col)
}

type Parser struct {
	toks []lexer.Token
	pos  int
	tok  lexer.Token
}

// ParseSource lexes and parses src.
func ParseSource(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse builds the program from toks. A sequence that runs out without an
// EOF token is treated as if it ended in one.
func Parse(toks []lexer.Token) (*ast.Program, error) {
	p := &Parser{toks: toks}
	p.pos = -1
	p.next()
	prog := &ast.Program{}
	for p.tok.Type != lexer.EOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, s)
	}
	return prog, nil
}

func (p *Parser) next() {
	if p.pos+1 < len(p.toks) {
		p.pos++
		p.tok = p.toks[p.pos]
		return
	}
	p.pos = len(p.toks)
	p.tok = lexer.Token{Type: lexer.EOF, Lex: "EOF"}
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		p.tok.Pos, p.tok.Line, p.tok.Col = last.Pos+len(last.Lex), last.Line, last.Col+len(last.Lex)
	}
}

func (p *Parser) unexpected() error { return &UnexpectedTokenError{Tok: p.tok} }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.tok.Type != tt {
		return lexer.Token{}, p.unexpected()
	}
	t := p.tok
	p.next()
	return t, nil
}

// statement := 'return' assignExpr ';' | assignExpr ';'
func (p *Parser) parseStmt() (ast.Stmt, error) {
	if p.tok.Type == lexer.KW_RETURN {
		p.next()
		e, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Expr: e}, nil
	}
	e, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: e}, nil
}

// Expr grammar:
// assign = add [ '=' assign ]
// add    = mul { (+|-) mul }
// mul    = primary { (*|/) primary }
// primary = IDENT | INT | '(' assign ')'
func (p *Parser) parseAssign() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != lexer.ASSIGN {
		return left, nil
	}
	p.next()
	right, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: ast.OpAssign, Left: left, Right: right}, nil
}

func (p *Parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == lexer.PLUS || p.tok.Type == lexer.MINUS {
		op := p.tok.Type
		p.next()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: binOpFromToken(op), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == lexer.STAR || p.tok.Type == lexer.SLASH {
		op := p.tok.Type
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: binOpFromToken(op), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.tok.Type {
	case lexer.IDENT:
		id := &ast.Ident{Name: p.tok.Lex}
		p.next()
		return id, nil
	case lexer.INT:
		lit := &ast.IntLit{Value: p.tok.Value}
		p.next()
		return lit, nil
	case lexer.LPAREN:
		p.next()
		e, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.unexpected()
	}
}

func binOpFromToken(t lexer.TokenType) ast.BinOp {
	switch t {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	default:
		panic(fmt.Sprintf("parser: %v is not a binary operator", t))
	}
}
