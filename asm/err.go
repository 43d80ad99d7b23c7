package asm

import (
	"errors"

	"github.com/ezrec/s16/translate"
)

var (
	f       = translate.From
	fprintf = translate.Fprintf
)

var (
	// Lexer errors
	ErrNumberDigits           = errors.New(f("hex number without digits"))
	ErrNumberRange            = errors.New(f("number exceeds 32 bits"))
	ErrStringUnterminated     = errors.New(f("string unterminated"))
	ErrStringEscape           = errors.New(f("string escape invalid"))
	ErrExpressionOpen         = errors.New(f("'$' without '('"))
	ErrExpressionUnterminated = errors.New(f("expression unterminated"))

	// Parser errors
	ErrStatementInvalid  = errors.New(f("expected label, instruction, or directive"))
	ErrLabelColon        = errors.New(f("label without ':'"))
	ErrCommaExpected     = errors.New(f("',' expected"))
	ErrRegisterExpected  = errors.New(f("register expected"))
	ErrImmediateExpected = errors.New(f("immediate expected"))
	ErrImmediateRange    = errors.New(f("immediate exceeds 16 bits"))
	ErrConstantExpected  = errors.New(f("constant expected"))
	ErrDirectiveExpected = errors.New(f("directive name expected"))
	ErrStringExpected    = errors.New(f("string expected"))
	ErrOrgBackward       = errors.New(f(".org before current address"))
	ErrEquateSyntax      = errors.New(f(".equ syntax"))
	ErrEquateDuplicate   = errors.New(f(".equ duplicated"))
	ErrProgramOverflow   = errors.New(f("program exceeds 64KiB address space"))
)

// ErrCharacter is a character that starts no token.
type ErrCharacter rune

func (err ErrCharacter) Error() string {
	return f("unexpected character %q", rune(err))
}

// ErrDirectiveUnknown is a directive name the assembler does not know.
type ErrDirectiveUnknown string

func (err ErrDirectiveUnknown) Error() string {
	return f("unknown directive .%v", string(err))
}

// ErrExpression is a $(...) expression that did not evaluate to an integer.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("expression $(%v) invalid", string(err))
}

// ErrLabelMissing is a reference to a label never defined.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrLabelDuplicate is a label defined more than once.
type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(err))
}

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	Position Cursor
	Token    string
	Err      error
}

func (err *ErrSyntax) Error() string {
	if len(err.Token) == 0 {
		return f("%v: %v", err.Position, err.Err)
	}
	return f("%v: '%v' %v", err.Position, err.Token, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
