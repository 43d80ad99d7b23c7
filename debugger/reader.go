package debugger

import (
	"bufio"
	"io"
)

// LineReader is a source of command lines, such as a golang.org/x/term Terminal.
// At the end of input ReadLine returns io.EOF.
type LineReader interface {
	ReadLine() (line string, err error)
}

type scanReader struct {
	scanner *bufio.Scanner
}

// NewLineReader returns a LineReader over plain text input.
func NewLineReader(r io.Reader) LineReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (sr *scanReader) ReadLine() (line string, err error) {
	if !sr.scanner.Scan() {
		err = sr.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}
	line = sr.scanner.Text()
	return
}
