package machine

import (
	"bufio"
	"errors"
	"io"

	"github.com/ezrec/s16/internal"
)

// Load copies a program image from r into memory, starting at address.
// The image may not exceed size bytes, nor extend past the top of memory.
// On ErrOutOfMemory the bytes that fit have been stored.
func (proc *Processor) Load(r io.Reader, address uint16, size int) (n int, err error) {
	if r == nil || size < 0 {
		err = ErrInvalidArgument
		return
	}

	limit := min(size, MEMORY_SIZE-int(address))

	br := bufio.NewReader(r)
	for {
		var b byte
		b, err = br.ReadByte()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if n >= limit {
			err = ErrOutOfMemory
			return
		}
		proc.Memory.StoreByte(address+uint16(n), b)
		n++
	}

	internal.Logger(proc.Log).Infof("loaded %d bytes into memory at %#04x", n, address)
	return
}
