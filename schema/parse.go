package schema

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// MaxArraySize bounds N in [N]byte.
const MaxArraySize = 1<<31 - 1

type SyntaxError struct {
	Msg string
	Pos scanner.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("schema: %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

type parser struct {
	s   scanner.Scanner
	tok rune
	err *SyntaxError
}

// Parse parses a type expression.
func Parse(expr string) (*Type, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(msg)
	}
	p.next()

	t := p.parseType()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail(fmt.Sprintf("unexpected %q after type", p.s.TokenText()))
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) *Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

func (p *parser) fail(msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Msg: msg, Pos: p.s.Position}
	}
}

func (p *parser) expect(tok rune) bool {
	if p.tok != tok {
		p.fail(fmt.Sprintf("expected %q, found %q", tok, p.s.TokenText()))
		return false
	}
	p.next()
	return true
}

func (p *parser) parseType() *Type {
	if p.err != nil {
		return nil
	}

	switch p.tok {
	case scanner.Ident:
		kind, ok := primitives[p.s.TokenText()]
		if !ok {
			p.fail(fmt.Sprintf("unknown type %q", p.s.TokenText()))
			return nil
		}
		p.next()
		return &Type{Kind: kind}

	case '?':
		p.next()
		if p.tok == '?' {
			// Some(None) and None would both decode to nil.
			p.fail("optional of an optional")
			return nil
		}
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &Type{Kind: Option, Elem: elem}

	case '[':
		p.next()
		if p.tok == ']' {
			p.next()
			pos := p.s.Position
			elem := p.parseType()
			if elem == nil {
				return nil
			}
			// Every element must consume input, or a single count could
			// demand an unbounded number of decoded elements.
			if elem.zeroWidth() {
				p.err = &SyntaxError{Msg: fmt.Sprintf("sequence of zero-width %v", elem), Pos: pos}
				return nil
			}
			return &Type{Kind: Slice, Elem: elem}
		}
		return p.parseArray()

	case '{':
		p.next()
		return p.parseRecord()

	case scanner.EOF:
		p.fail("unexpected end of type expression")
	default:
		p.fail(fmt.Sprintf("unexpected %q", p.s.TokenText()))
	}
	return nil
}

// parseArray parses the remainder of [N]byte after the opening bracket.
func (p *parser) parseArray() *Type {
	if p.tok != scanner.Int {
		p.fail(fmt.Sprintf("expected array length, found %q", p.s.TokenText()))
		return nil
	}
	size, err := strconv.ParseUint(p.s.TokenText(), 0, 64)
	if err != nil || size > MaxArraySize {
		p.fail(fmt.Sprintf("invalid array length %s", p.s.TokenText()))
		return nil
	}
	p.next()
	if !p.expect(']') {
		return nil
	}
	if p.tok != scanner.Ident || p.s.TokenText() != "byte" {
		p.fail(fmt.Sprintf("expected byte, found %q", p.s.TokenText()))
		return nil
	}
	p.next()
	return &Type{Kind: Array, Size: int(size)}
}

// parseRecord parses the remainder of a record after the opening brace.
func (p *parser) parseRecord() *Type {
	t := &Type{Kind: Record}
	seen := make(map[string]struct{})

	for p.tok != '}' {
		if len(t.Fields) > 0 && !p.expect(',') {
			return nil
		}
		if p.tok != scanner.Ident {
			p.fail(fmt.Sprintf("expected field name, found %q", p.s.TokenText()))
			return nil
		}
		name := p.s.TokenText()
		if _, ok := seen[name]; ok {
			p.fail(fmt.Sprintf("duplicate field %q", name))
			return nil
		}
		seen[name] = struct{}{}
		p.next()
		if !p.expect(':') {
			return nil
		}
		ft := p.parseType()
		if ft == nil {
			return nil
		}
		t.Fields = append(t.Fields, Field{Name: name, Type: ft})
	}
	p.next()
	return t
}
