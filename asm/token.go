package asm

import (
	"strconv"

	"github.com/ezrec/s16/isa"
)

//go:generate go tool stringer -linecomment -type TokenType

// TokenType is the lexical class of a token.
type TokenType int

const (
	TOKEN_EOF        = TokenType(iota) // eof
	TOKEN_IDENTIFIER                   // identifier
	TOKEN_REGISTER                     // register
	TOKEN_NUMBER                       // number
	TOKEN_COMMA                        // comma
	TOKEN_COLON                        // colon
	TOKEN_PERIOD                       // period
	TOKEN_STRING                       // string
	TOKEN_EXPRESSION                   // expression
)

// TOKEN_TEXT_MAX is the longest identifier kept by the lexer.
const TOKEN_TEXT_MAX = 31

// Cursor is a position in the source text.
// Lines count from 1, columns from 0.
type Cursor struct {
	Line   int
	Column int
}

// String returns the position as 'line:column'.
func (cur Cursor) String() string {
	return strconv.Itoa(cur.Line) + ":" + strconv.Itoa(cur.Column)
}

// Token is a single lexical element.
type Token struct {
	Type     TokenType
	Text     string // Identifier name, decoded string, or expression body.
	Value    uint32 // Numeric value, or register index.
	Position Cursor // Start of the token.
}

// Register returns the token value as a register.
func (tok Token) Register() isa.Register {
	return isa.Register(tok.Value)
}

// String returns a short description of the token.
func (tok Token) String() string {
	switch tok.Type {
	case TOKEN_EOF:
		return tok.Type.String()
	case TOKEN_NUMBER:
		return f("%v %#x", tok.Type, tok.Value)
	case TOKEN_COMMA:
		return ","
	case TOKEN_COLON:
		return ":"
	case TOKEN_PERIOD:
		return "."
	case TOKEN_STRING:
		return f("%q", tok.Text)
	case TOKEN_EXPRESSION:
		return "$(" + tok.Text + ")"
	}
	return tok.Text
}
