package asm

import (
	"io"
	"iter"
	"maps"
	"slices"
)

// Program is an assembled program image.
type Program struct {
	Base   uint16            // Load address of the image.
	Groups []Group           // Encoded groups, in address order.
	Labels map[string]uint16 // Map of labels to addresses.
}

// Debug locates a byte of the image in its source group.
type Debug struct {
	*Group
	Index int // Byte offset into the group.
}

// Debug returns the group that covers address pc, if any.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, group := range prog.Groups {
		if pc >= group.Address && int(pc) < int(group.Address)+group.Size() {
			dbg = Debug{
				Group: &prog.Groups[n],
				Index: int(pc - group.Address),
			}
			break
		}
	}

	return
}

// Binary returns the program image, from Base to the last group.
func (prog *Program) Binary() (bins []byte) {
	for _, group := range prog.Groups {
		bins = append(bins, group.Bytes()...)
	}

	return
}

// WriteTo writes the program image to w.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	c, err := w.Write(prog.Binary())
	n = int64(c)
	return
}

// Words iterates over the address and binary word of each instruction.
func (prog *Program) Words() iter.Seq2[uint16, uint32] {
	return func(yield func(pc uint16, word uint32) bool) {
		for _, group := range prog.Groups {
			if group.Kind != GROUP_INSTRUCTION {
				continue
			}
			if !yield(group.Address, group.Binary) {
				return
			}
		}
	}
}

// Symbols returns the label names at address pc, sorted.
func (prog *Program) Symbols(pc uint16) (names []string) {
	for name, addr := range prog.Labels {
		if addr == pc {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return
}

// Listing writes an address, hex, and source listing of the program.
func (prog *Program) Listing(w io.Writer) (err error) {
	labels := slices.Sorted(maps.Keys(prog.Labels))
	slices.SortStableFunc(labels, func(a, b string) int {
		return int(prog.Labels[a]) - int(prog.Labels[b])
	})

	for _, group := range prog.Groups {
		for len(labels) > 0 && prog.Labels[labels[0]] <= group.Address {
			_, err = fprintf(w, "%04x:          %v:\n", prog.Labels[labels[0]], labels[0])
			if err != nil {
				return
			}
			labels = labels[1:]
		}
		switch group.Kind {
		case GROUP_INSTRUCTION:
			_, err = fprintf(w, "%04x: %08x   %v\n", group.Address, group.Binary, group.Instruction)
		case GROUP_HALF:
			_, err = fprintf(w, "%04x: %04x       .half 0x%04x\n", group.Address, group.Binary, group.Binary)
		case GROUP_DATA:
			_, err = fprintf(w, "%04x: (%d bytes) .%v\n", group.Address, len(group.Data), group.Symbol)
		}
		if err != nil {
			return
		}
	}

	for _, label := range labels {
		_, err = fprintf(w, "%04x:          %v:\n", prog.Labels[label], label)
		if err != nil {
			return
		}
	}
	return
}
