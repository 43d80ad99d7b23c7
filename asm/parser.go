package asm

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/isa"
)

// ADDRESS_LIMIT is the size of the S16 address space.
const ADDRESS_LIMIT = 0x10000

// Parser converts tokens into groups, assigning each an address.
type Parser struct {
	Pc     int              // Address of the next group.
	Equate map[string]int64 // Named constants, from .equ or predefined.
	Log    *logrus.Logger   // Debug log of groups; standard logger if nil.

	tokens []Token
	index  int
}

// NewParser returns a parser over tokens, starting at address base.
func NewParser(tokens []Token, base uint16) *Parser {
	return &Parser{
		Pc:     int(base),
		Equate: map[string]int64{},
		tokens: tokens,
	}
}

// peek returns the token n ahead, or TOKEN_EOF past the end.
func (ps *Parser) peek(n int) (tok Token) {
	if ps.index+n < len(ps.tokens) {
		tok = ps.tokens[ps.index+n]
	} else if len(ps.tokens) > 0 {
		tok.Position = ps.tokens[len(ps.tokens)-1].Position
	}
	return
}

// next consumes a token; io.EOF when none remain.
func (ps *Parser) next() (tok Token, err error) {
	if ps.index >= len(ps.tokens) {
		err = io.EOF
		return
	}
	tok = ps.tokens[ps.index]
	ps.index++
	if tok.Type == TOKEN_EOF {
		err = io.EOF
	}
	return
}

// expect consumes a token of a given type, or fails with err.
func (ps *Parser) expect(kind TokenType, err error) (tok Token, _ error) {
	tok = ps.peek(0)
	if tok.Type != kind {
		return tok, ps.syntax(tok, err)
	}
	ps.index++
	return tok, nil
}

func (ps *Parser) syntax(tok Token, err error) error {
	text := tok.Text
	if tok.Type != TOKEN_IDENTIFIER && tok.Type != TOKEN_REGISTER {
		text = tok.String()
	}
	return &ErrSyntax{Position: tok.Position, Token: text, Err: err}
}

// advance moves the program counter past a group of size bytes.
func (ps *Parser) advance(group *Group, size int) (err error) {
	if ps.Pc+size > ADDRESS_LIMIT {
		err = &ErrSyntax{Position: group.Position, Token: group.Symbol, Err: ErrProgramOverflow}
		return
	}
	group.Address = uint16(ps.Pc)
	ps.Pc += size
	return
}

// Next returns the next group. At the end of the tokens it returns io.EOF.
func (ps *Parser) Next() (group Group, err error) {
	for {
		var tok Token
		tok, err = ps.next()
		if err != nil {
			return
		}

		var ok bool
		switch tok.Type {
		case TOKEN_PERIOD:
			group, ok, err = ps.directive(tok)
		case TOKEN_IDENTIFIER:
			if om, found := isa.OpcodeFromSymbol(tok.Text); found {
				group, err = ps.instruction(tok, om)
			} else {
				group, err = ps.label(tok)
			}
			ok = true
		default:
			err = ps.syntax(tok, ErrStatementInvalid)
		}
		if err != nil {
			return
		}
		if !ok {
			continue
		}

		internal.Logger(ps.Log).WithFields(logrus.Fields{
			"position": group.Position,
			"address":  f("%#04x", group.Address),
		}).Debugf("parser: %v", group)
		return
	}
}

// label parses 'name:'.
func (ps *Parser) label(tok Token) (group Group, err error) {
	_, err = ps.expect(TOKEN_COLON, ErrLabelColon)
	if err != nil {
		return
	}

	group = Group{
		Kind:     GROUP_LABEL,
		Position: tok.Position,
		Symbol:   tok.Text,
		Label:    tok.Text,
	}
	err = ps.advance(&group, 0)
	return
}

// immediateAhead reports whether an optional immediate follows.
// An identifier counts unless it is a mnemonic or the start of a label.
func (ps *Parser) immediateAhead() bool {
	tok := ps.peek(0)
	switch tok.Type {
	case TOKEN_NUMBER, TOKEN_EXPRESSION:
		return true
	case TOKEN_IDENTIFIER:
		if _, ok := isa.OpcodeFromSymbol(tok.Text); ok {
			return false
		}
		return ps.peek(1).Type != TOKEN_COLON
	}
	return false
}

// instruction parses the operands of a mnemonic, expanding pseudo instructions.
func (ps *Parser) instruction(tok Token, om isa.OpcodeMap) (group Group, err error) {
	group = Group{
		Kind:        GROUP_INSTRUCTION,
		Position:    tok.Position,
		Symbol:      om.Symbol,
		Instruction: om.Instruction(),
	}

	for n, operand := range om.Operands {
		if om.Optional && operand == isa.OPERAND_IMMEDIATE && !ps.immediateAhead() {
			break
		}
		if n > 0 {
			_, err = ps.expect(TOKEN_COMMA, ErrCommaExpected)
			if err != nil {
				return
			}
		}
		if operand == isa.OPERAND_IMMEDIATE {
			group.Immediate, group.ImmediateLabel, err = ps.immediate()
			if err != nil {
				return
			}
			continue
		}
		var reg Token
		reg, err = ps.expect(TOKEN_REGISTER, ErrRegisterExpected)
		if err != nil {
			return
		}
		group.Set(operand, reg.Register())
	}

	err = ps.advance(&group, 4)
	return
}

// immediate parses a number, expression, equate, or label reference.
func (ps *Parser) immediate() (value uint16, label string, err error) {
	tok := ps.peek(0)
	if tok.Type == TOKEN_IDENTIFIER {
		if _, ok := ps.Equate[tok.Text]; !ok {
			ps.index++
			label = tok.Text
			return
		}
	}

	v64, err := ps.constant(ErrImmediateExpected)
	if err != nil {
		return
	}

	switch {
	case v64 >= 0 && v64 <= 0xffff:
		value = uint16(v64)
	case v64 < 0 && v64 >= -0x8000:
		value = uint16(v64 & 0xffff)
	default:
		err = ps.syntax(tok, ErrImmediateRange)
	}
	return
}

// constant parses a value known at parse time: a number, an expression, or an equate.
func (ps *Parser) constant(expected error) (value int64, err error) {
	tok := ps.peek(0)
	switch tok.Type {
	case TOKEN_NUMBER:
		value = int64(tok.Value)
	case TOKEN_EXPRESSION:
		value, err = ps.evaluate(tok.Text)
		if err != nil {
			err = ps.syntax(tok, err)
			return
		}
	case TOKEN_IDENTIFIER:
		var ok bool
		value, ok = ps.Equate[tok.Text]
		if !ok {
			err = ps.syntax(tok, expected)
			return
		}
	default:
		err = ps.syntax(tok, expected)
		return
	}
	ps.index++
	return
}

// evaluate computes a $(...) expression, with equates and PC predeclared.
func (ps *Parser) evaluate(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"PC": starlark.MakeInt(ps.Pc),
	}
	for key, val := range ps.Equate {
		pred[key] = starlark.MakeInt64(val)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}
	return
}

// directive parses a '.name ...' directive. Directives with no image set ok to false.
func (ps *Parser) directive(period Token) (group Group, ok bool, err error) {
	name, err := ps.expect(TOKEN_IDENTIFIER, ErrDirectiveExpected)
	if err != nil {
		return
	}

	group = Group{
		Position: period.Position,
		Symbol:   name.Text,
	}

	switch name.Text {
	case "org":
		var target int64
		tok := ps.peek(0)
		target, err = ps.constant(ErrConstantExpected)
		if err != nil {
			return
		}
		switch {
		case target < int64(ps.Pc):
			err = ps.syntax(tok, ErrOrgBackward)
			return
		case target > ADDRESS_LIMIT:
			err = ps.syntax(tok, ErrProgramOverflow)
			return
		}
		group.Kind = GROUP_DATA
		group.Data = make([]byte, int(target)-ps.Pc)
	case "half":
		group.Kind = GROUP_HALF
		group.Immediate, group.ImmediateLabel, err = ps.immediate()
	case "ascii":
		var str Token
		str, err = ps.expect(TOKEN_STRING, ErrStringExpected)
		group.Kind = GROUP_DATA
		group.Data = []byte(str.Text)
	case "equ":
		err = ps.equate()
		return
	default:
		err = ps.syntax(name, ErrDirectiveUnknown(name.Text))
	}
	if err != nil {
		return
	}

	err = ps.advance(&group, group.Size())
	ok = true
	return
}

// equate parses '.equ NAME value' or '.equ NAME, value'.
func (ps *Parser) equate() (err error) {
	name, err := ps.expect(TOKEN_IDENTIFIER, ErrEquateSyntax)
	if err != nil {
		return
	}
	if _, ok := isa.OpcodeFromSymbol(name.Text); ok {
		return ps.syntax(name, ErrEquateSyntax)
	}
	if _, ok := ps.Equate[name.Text]; ok {
		return ps.syntax(name, ErrEquateDuplicate)
	}
	if ps.peek(0).Type == TOKEN_COMMA {
		ps.index++
	}

	value, err := ps.constant(ErrConstantExpected)
	if err != nil {
		return
	}

	ps.Equate[name.Text] = value
	internal.Logger(ps.Log).WithField("position", name.Position).Debugf("parser: .equ %v %#x", name.Text, value)
	return
}

// Parse converts all tokens into groups, starting at address base.
func Parse(tokens []Token, base uint16, log *logrus.Logger) (groups []Group, err error) {
	ps := NewParser(tokens, base)
	ps.Log = log
	return ps.All()
}

// All returns the remaining groups.
func (ps *Parser) All() (groups []Group, err error) {
	for {
		var group Group
		group, err = ps.Next()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			groups = nil
			return
		}
		groups = append(groups, group)
	}
}
