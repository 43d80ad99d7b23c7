package asm

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/internal"
)

// Encoder is the second pass: it collects labels, resolves label
// references, and packs instructions into words.
type Encoder struct {
	Log   *logrus.Logger    // Debug log of resolved labels; standard logger if nil.
	Label map[string]uint16 // Map of labels to addresses, after Encode.
}

// harvest collects label definitions, and returns the groups that carry an image.
func (enc *Encoder) harvest(groups []Group) (image []Group, err error) {
	enc.Label = map[string]uint16{}
	for _, group := range groups {
		if group.Kind != GROUP_LABEL {
			image = append(image, group)
			continue
		}
		if _, ok := enc.Label[group.Label]; ok {
			err = &ErrSyntax{Position: group.Position, Token: group.Label, Err: ErrLabelDuplicate(group.Label)}
			return
		}
		enc.Label[group.Label] = group.Address
		internal.Logger(enc.Log).WithField("position", group.Position).Debugf("encoder: label %v = %#04x", group.Label, group.Address)
	}
	return
}

// resolve replaces label references with their addresses.
func (enc *Encoder) resolve(image []Group) (err error) {
	for n := range image {
		group := &image[n]
		if len(group.ImmediateLabel) == 0 {
			continue
		}
		addr, ok := enc.Label[group.ImmediateLabel]
		if !ok {
			err = &ErrSyntax{Position: group.Position, Token: group.ImmediateLabel, Err: ErrLabelMissing(group.ImmediateLabel)}
			return
		}
		group.Immediate = addr
		group.ImmediateLabel = ""
	}
	return
}

// pack fills in the binary value of each instruction and half.
func (enc *Encoder) pack(image []Group) (err error) {
	for n := range image {
		group := &image[n]
		switch group.Kind {
		case GROUP_INSTRUCTION:
			group.Binary, err = group.Instruction.Encode()
			if err != nil {
				err = &ErrSyntax{Position: group.Position, Token: group.Symbol, Err: err}
				return
			}
		case GROUP_HALF:
			group.Binary = uint32(group.Immediate)
		}
	}
	return
}

// Encode resolves and packs groups. Label groups are consumed; the
// returned groups are those with an image, in address order.
// On any error no groups are returned.
func (enc *Encoder) Encode(groups []Group) (image []Group, err error) {
	image, err = enc.harvest(groups)
	if err == nil {
		err = enc.resolve(image)
	}
	if err == nil {
		err = enc.pack(image)
	}
	if err != nil {
		image = nil
	}
	return
}
