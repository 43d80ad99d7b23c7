package asm

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/isa"
)

// Lexer splits source text into tokens.
type Lexer struct {
	Cursor                // Position of the next character.
	Log    *logrus.Logger // Trace log of tokens; standard logger if nil.

	reader *bufio.Reader
	last   Cursor // Position before the last read, for unread.
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input io.Reader) (lx *Lexer) {
	lx = &Lexer{
		reader: bufio.NewReader(input),
	}
	lx.reset()
	return
}

func (lx *Lexer) reset() {
	lx.Cursor = Cursor{Line: 1}
	lx.last = lx.Cursor
}

// read returns the next character, advancing the cursor.
func (lx *Lexer) read() (r rune, err error) {
	r, _, err = lx.reader.ReadRune()
	if err != nil {
		return
	}
	lx.last = lx.Cursor
	if r == '\n' {
		lx.Line++
		lx.Column = 0
	} else {
		lx.Column++
	}
	return
}

// unread pushes back the character returned by the last read.
func (lx *Lexer) unread() {
	_ = lx.reader.UnreadRune()
	lx.Cursor = lx.last
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdent(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// Next returns the next token from the input.
// At the end of input it returns io.EOF, and the cursor is reset to line 1.
func (lx *Lexer) Next() (tok Token, err error) {
	for {
		start := lx.Cursor
		var r rune
		r, err = lx.read()
		if errors.Is(err, io.EOF) {
			lx.reset()
			return
		}
		if err != nil {
			return
		}

		if unicode.IsSpace(r) {
			continue
		}

		if r == ';' {
			err = lx.skipLine()
			if err != nil {
				return
			}
			continue
		}

		tok.Position = start
		switch {
		case r == ',':
			tok.Type = TOKEN_COMMA
		case r == ':':
			tok.Type = TOKEN_COLON
		case r == '.':
			tok.Type = TOKEN_PERIOD
		case r == '"':
			tok.Type = TOKEN_STRING
			tok.Text, err = lx.lexString()
		case r == '$':
			tok.Type = TOKEN_EXPRESSION
			tok.Text, err = lx.lexExpression()
		case isDigit(r):
			tok.Type = TOKEN_NUMBER
			tok.Text, tok.Value, err = lx.lexNumber(r)
		case isIdentStart(r):
			tok.Type = TOKEN_IDENTIFIER
			tok.Text, err = lx.lexIdentifier(r)
			if reg, ok := isa.RegisterFromSymbol(tok.Text); ok {
				tok.Type = TOKEN_REGISTER
				tok.Value = uint32(reg)
			}
		default:
			err = ErrCharacter(r)
		}

		if err != nil {
			err = &ErrSyntax{Position: start, Token: tok.Text, Err: err}
			return
		}

		internal.Logger(lx.Log).WithFields(logrus.Fields{
			"position": tok.Position,
			"type":     tok.Type,
		}).Tracef("lexer: %v", tok)
		return
	}
}

// skipLine consumes a comment through the end of the line.
func (lx *Lexer) skipLine() (err error) {
	for {
		var r rune
		r, err = lx.read()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil || r == '\n' {
			return
		}
	}
}

// lexString decodes a double quoted string, the opening quote already read.
func (lx *Lexer) lexString() (text string, err error) {
	var sb strings.Builder
	for {
		var r rune
		r, err = lx.read()
		if errors.Is(err, io.EOF) || r == '\n' {
			err = ErrStringUnterminated
			return
		}
		if err != nil {
			return
		}
		switch r {
		case '"':
			text = sb.String()
			return
		case '\\':
			r, err = lx.read()
			if err != nil {
				err = ErrStringUnterminated
				return
			}
			switch r {
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			case 't':
				r = '\t'
			case 'e':
				r = '\033'
			case '0':
				r = 0
			case '\\', '"':
			default:
				err = ErrStringEscape
				return
			}
		}
		sb.WriteRune(r)
	}
}

// lexExpression collects the body of a $(...) expression, the '$' already read.
// Parentheses nest; the expression must close on the same line.
func (lx *Lexer) lexExpression() (text string, err error) {
	r, err := lx.read()
	if err != nil || r != '(' {
		err = ErrExpressionOpen
		return
	}

	var sb strings.Builder
	depth := 1
	for {
		r, err = lx.read()
		if errors.Is(err, io.EOF) || r == '\n' {
			err = ErrExpressionUnterminated
			return
		}
		if err != nil {
			return
		}
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				text = sb.String()
				return
			}
		}
		sb.WriteRune(r)
	}
}

// lexNumber reads a decimal or 0x prefixed hexadecimal number.
func (lx *Lexer) lexNumber(first rune) (text string, value uint32, err error) {
	var sb strings.Builder
	sb.WriteRune(first)

	base := uint64(10)
	digit := isDigit
	if first == '0' {
		var r rune
		r, err = lx.read()
		switch {
		case err == nil && (r == 'x' || r == 'X'):
			sb.WriteRune(r)
			base = 16
			digit = isHexDigit
		case err == nil:
			lx.unread()
		case errors.Is(err, io.EOF):
			err = nil
		default:
			return
		}
	}

	var acc uint64
	if base == 10 {
		acc = uint64(first - '0')
	}
	digits := 0
	for {
		var r rune
		r, err = lx.read()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if !digit(r) {
			lx.unread()
			break
		}
		sb.WriteRune(r)
		digits++
		acc = acc*base + hexValue(r)
		if acc > 0xffff_ffff {
			err = ErrNumberRange
		}
	}

	text = sb.String()
	if err != nil {
		return
	}

	if base == 16 && digits == 0 {
		err = ErrNumberDigits
		return
	}

	value = uint32(acc)
	return
}

func hexValue(r rune) uint64 {
	switch {
	case r >= 'a':
		return uint64(r-'a') + 10
	case r >= 'A':
		return uint64(r-'A') + 10
	}
	return uint64(r - '0')
}

// lexIdentifier reads an identifier. Characters past TOKEN_TEXT_MAX are consumed and dropped.
func (lx *Lexer) lexIdentifier(first rune) (text string, err error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		var r rune
		r, err = lx.read()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if !isIdent(r) {
			lx.unread()
			break
		}
		if sb.Len() < TOKEN_TEXT_MAX {
			sb.WriteRune(r)
		}
	}
	text = sb.String()
	return
}

// LexAll returns all the tokens of input.
func LexAll(input io.Reader, log *logrus.Logger) (tokens []Token, err error) {
	lx := NewLexer(input)
	lx.Log = log
	for {
		var tok Token
		tok, err = lx.Next()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			tokens = nil
			return
		}
		tokens = append(tokens, tok)
	}
}
