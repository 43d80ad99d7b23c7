package isa

// Format is the 2-bit instruction layout selector.
type Format uint8

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_I      = Format(0b00) // i
	FORMAT_DSI    = Format(0b10) // dsi
	FORMAT_DSS    = Format(0b11) // dss
	FORMAT_PSEUDO = Format(0xff) // pseudo
)

// Field sizes, in bits.
const (
	FORMAT_SIZE    = 2
	FUNCT_SIZE     = 4
	REGISTER_SIZE  = 5
	IMMEDIATE_SIZE = 16
)

// Field masks, after shifting down.
const (
	FORMAT_MASK    = (1 << FORMAT_SIZE) - 1
	FUNCT_MASK     = (1 << FUNCT_SIZE) - 1
	REGISTER_MASK  = (1 << REGISTER_SIZE) - 1
	IMMEDIATE_MASK = (1 << IMMEDIATE_SIZE) - 1
)

// Field positions within an instruction word.
const (
	FORMAT_SHIFT    = 0
	FUNCT_SHIFT     = FORMAT_SHIFT + FORMAT_SIZE
	DEST_SHIFT      = FUNCT_SHIFT + FUNCT_SIZE
	SOURCE1_SHIFT   = DEST_SHIFT + REGISTER_SIZE
	SOURCE2_SHIFT   = SOURCE1_SHIFT + REGISTER_SIZE
	IMMEDIATE_SHIFT = 16
)

// Valid returns true if the format is one of the three machine layouts.
func (fm Format) Valid() bool {
	switch fm {
	case FORMAT_I, FORMAT_DSI, FORMAT_DSS:
		return true
	}
	return false
}

// WordFormat returns the format field of an instruction word.
func WordFormat(word uint32) Format {
	return Format((word >> FORMAT_SHIFT) & FORMAT_MASK)
}
