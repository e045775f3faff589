package util

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// MaxLineSize bounds a single input line.  Key sequences have no length
// limit of their own, so this is generous.
const MaxLineSize = 1 << 20

// ReadLines calls fn for every line of r with the trailing "\r\n" or
// "\n" removed.  Lines are passed verbatim otherwise; spaces inside a
// line are significant.  Reading stops at EOF, when fn returns an
// error, or when ctx is cancelled.
func ReadLines(ctx context.Context, r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineSize)

	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		if err := fn(lineNo, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	return sc.Err()
}
