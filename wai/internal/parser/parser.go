// Package parser turns a token stream into an ast.Unit.
package parser

import (
	"github.com/singlestore-labs/to-wit/errors"
	"github.com/singlestore-labs/to-wit/wai/internal/ast"
	"github.com/singlestore-labs/to-wit/wai/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) line() int {
	if t := p.peek(); t != nil {
		return t.Line
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].Line
	}
	return 1
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.line(), "unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, errors.Syntax(t.Line, "expected %v, got %q", typ, t.Value)
	}
	return t, nil
}

func (p *Parser) accept(typ token.Type) bool {
	if t := p.peek(); t != nil && t.Type == typ {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) Parse() (*ast.Unit, error) {
	unit := &ast.Unit{}

	for {
		t := p.peek()
		if t == nil {
			return unit, nil
		}
		if t.Type != token.Ident {
			return nil, errors.Syntax(t.Line, "expected declaration, got %q", t.Value)
		}

		var (
			decl ast.Decl
			err  error
		)
		switch t.Value {
		case "record":
			decl, err = p.parseRecord()
		case "variant":
			decl, err = p.parseVariant()
		case "enum":
			decl, err = p.parseEnum()
		case "flags":
			decl, err = p.parseFlags()
		case "type":
			decl, err = p.parseAlias()
		default:
			decl, err = p.parseFunc()
		}
		if err != nil {
			return nil, err
		}
		unit.Decls = append(unit.Decls, decl)
	}
}

// record name { field: type, ... }
func (p *Parser) parseRecord() (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.Decl{}, err
	}
	fields, err := p.parseFieldBlock()
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:   ast.DeclRecord,
		Name:   name.Value,
		Fields: fields,
		Line:   kw.Line,
	}, nil
}

// variant name { case(type), case, ... }
func (p *Parser) parseVariant() (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return ast.Decl{}, err
	}

	var cases []ast.Case
	for !p.accept(token.RBrace) {
		caseName, err := p.expect(token.Ident)
		if err != nil {
			return ast.Decl{}, err
		}
		c := ast.Case{Name: caseName.Value, Line: caseName.Line}
		if p.accept(token.LParen) {
			typ, err := p.parseType()
			if err != nil {
				return ast.Decl{}, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return ast.Decl{}, err
			}
			c.Type = typ
		}
		cases = append(cases, c)

		if !p.accept(token.Comma) {
			if _, err := p.expect(token.RBrace); err != nil {
				return ast.Decl{}, err
			}
			break
		}
	}

	if len(cases) == 0 {
		return ast.Decl{}, errors.Syntax(kw.Line, "variant %q has no cases", name.Value)
	}
	return ast.Decl{
		Kind:  ast.DeclVariant,
		Name:  name.Value,
		Cases: cases,
		Line:  kw.Line,
	}, nil
}

// enum name { a, b, ... }
func (p *Parser) parseEnum() (ast.Decl, error) {
	return p.parseNameBlock(ast.DeclEnum)
}

// flags name { a, b, ... }
func (p *Parser) parseFlags() (ast.Decl, error) {
	return p.parseNameBlock(ast.DeclFlags)
}

func (p *Parser) parseNameBlock(kind ast.DeclKind) (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return ast.Decl{}, err
	}

	var cases []ast.Case
	for !p.accept(token.RBrace) {
		caseName, err := p.expect(token.Ident)
		if err != nil {
			return ast.Decl{}, err
		}
		cases = append(cases, ast.Case{Name: caseName.Value, Line: caseName.Line})

		if !p.accept(token.Comma) {
			if _, err := p.expect(token.RBrace); err != nil {
				return ast.Decl{}, err
			}
			break
		}
	}

	if len(cases) == 0 {
		return ast.Decl{}, errors.Syntax(kw.Line, "%q declaration %q is empty", kw.Value, name.Value)
	}
	return ast.Decl{
		Kind:  kind,
		Name:  name.Value,
		Cases: cases,
		Line:  kw.Line,
	}, nil
}

// type name = type
func (p *Parser) parseAlias() (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := p.expect(token.Equals); err != nil {
		return ast.Decl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind: ast.DeclAlias,
		Name: name.Value,
		Type: typ,
		Line: kw.Line,
	}, nil
}

// name: function(p: type, ...) -> type
func (p *Parser) parseFunc() (ast.Decl, error) {
	name := p.next()
	if _, err := p.expect(token.Colon); err != nil {
		return ast.Decl{}, err
	}
	kw, err := p.expect(token.Ident)
	if err != nil {
		return ast.Decl{}, err
	}
	if kw.Value != "function" && kw.Value != "func" {
		return ast.Decl{}, errors.Syntax(kw.Line, "expected \"function\", got %q", kw.Value)
	}
	if _, err := p.expect(token.LParen); err != nil {
		return ast.Decl{}, err
	}

	var params []ast.Field
	for !p.accept(token.RParen) {
		pname, err := p.expect(token.Ident)
		if err != nil {
			return ast.Decl{}, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return ast.Decl{}, err
		}
		typ, err := p.parseType()
		if err != nil {
			return ast.Decl{}, err
		}
		params = append(params, ast.Field{Name: pname.Value, Type: typ, Line: pname.Line})

		if !p.accept(token.Comma) {
			if _, err := p.expect(token.RParen); err != nil {
				return ast.Decl{}, err
			}
			break
		}
	}

	decl := ast.Decl{
		Kind:   ast.DeclFunc,
		Name:   name.Value,
		Fields: params,
		Line:   name.Line,
	}
	if p.accept(token.Arrow) {
		result, err := p.parseType()
		if err != nil {
			return ast.Decl{}, err
		}
		decl.Result = result
	}
	return decl, nil
}

func (p *Parser) parseFieldBlock() ([]ast.Field, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []ast.Field
	for !p.accept(token.RBrace) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: name.Value, Type: typ, Line: name.Line})

		if !p.accept(token.Comma) {
			if _, err := p.expect(token.RBrace); err != nil {
				return nil, err
			}
			break
		}
	}
	return fields, nil
}

var prims = map[string]ast.Prim{
	"u8":  ast.U8,
	"u16": ast.U16,
	"u32": ast.U32,
	"u64": ast.U64,
	"s8":  ast.S8,
	"s16": ast.S16,
	"s32": ast.S32,
	"s64": ast.S64,
	"f32": ast.F32,
	"f64": ast.F64,
	// older spellings
	"float32": ast.F32,
	"float64": ast.F64,
	"char":    ast.Char,
}

func (p *Parser) parseType() (*ast.TypeExpr, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.line(), "unexpected end of input, expected type")
	}
	if t.Type != token.Ident {
		return nil, errors.Syntax(t.Line, "expected type, got %q", t.Value)
	}

	if prim, ok := prims[t.Value]; ok {
		return &ast.TypeExpr{Kind: ast.ExprPrim, Prim: prim, Line: t.Line}, nil
	}

	switch t.Value {
	case "string":
		return &ast.TypeExpr{Kind: ast.ExprString, Line: t.Line}, nil

	case "bool":
		return &ast.TypeExpr{Kind: ast.ExprBool, Line: t.Line}, nil

	case "list":
		elem, err := p.parseTypeArgs(t.Line, 1)
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Kind: ast.ExprList, Args: elem, Line: t.Line}, nil

	case "option":
		elem, err := p.parseTypeArgs(t.Line, 1)
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Kind: ast.ExprOption, Args: elem, Line: t.Line}, nil

	case "expected", "result":
		args, err := p.parseTypeArgs(t.Line, 2)
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Kind: ast.ExprExpected, Args: args, Line: t.Line}, nil

	case "tuple":
		args, err := p.parseTypeArgs(t.Line, -1)
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Kind: ast.ExprTuple, Args: args, Line: t.Line}, nil
	}

	return &ast.TypeExpr{Kind: ast.ExprNamed, Name: t.Value, Line: t.Line}, nil
}

// parseTypeArgs reads <T, ...>. want < 0 accepts any positive arity.
// A bare "_" argument stands for an absent payload and yields a nil entry.
func (p *Parser) parseTypeArgs(line int, want int) ([]*ast.TypeExpr, error) {
	if _, err := p.expect(token.Lt); err != nil {
		return nil, err
	}

	var args []*ast.TypeExpr
	for {
		if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "_" {
			p.pos++
			args = append(args, nil)
		} else {
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, typ)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.Gt); err != nil {
		return nil, err
	}

	if want >= 0 && len(args) != want {
		return nil, errors.Syntax(line, "expected %d type argument(s), got %d", want, len(args))
	}
	if len(args) == 0 {
		return nil, errors.Syntax(line, "expected at least one type argument")
	}
	return args, nil
}
