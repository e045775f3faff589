package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"t9pad/config"
	"t9pad/internal/session"
	"t9pad/util"
)

// BatchMode decodes a fixed set of sequences: command-line arguments or
// the lines of a file.  Each result goes to stdout on its own line;
// failures go to stderr and do not stop the batch.
type BatchMode struct {
	Session   *session.Session
	Sequences []string
	File      string // "-" reads the session's stdin
	Quote     bool
}

// Run decodes every sequence and returns an error if any failed.
func (m *BatchMode) Run(ctx context.Context) error {
	var total, failed int
	decode := func(label, input string) {
		total++
		text, err := m.Session.Decode(input)
		if err != nil {
			failed++
			fmt.Fprintf(m.Session.Stderr, "%s: %v\n", label, err)
			return
		}
		if m.Quote {
			text = "'" + text + "'"
		}
		fmt.Fprintln(m.Session.Stdout, text)
	}

	if m.File != "" {
		r, closeFn, err := m.open()
		if err != nil {
			return err
		}
		defer closeFn()

		err = util.ReadLines(ctx, r, func(lineNo int, line string) error {
			if line == "" {
				return nil
			}
			decode(fmt.Sprintf("%s:%d", m.File, lineNo), line)
			return nil
		})
		if err != nil {
			return fmt.Errorf("read %s: %w", m.File, err)
		}
	} else {
		for _, seq := range m.Sequences {
			if err := ctx.Err(); err != nil {
				return err
			}
			decode(strconv.Quote(seq), seq)
		}
	}

	m.Session.Logger.Verbose("decoded %d sequences, %d failed", total, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d sequences failed", failed, total)
	}
	return nil
}

func (m *BatchMode) open() (io.Reader, func(), error) {
	if m.File == config.StdinPath {
		return m.Session.Stdin, func() {}, nil
	}
	f, err := os.Open(m.File)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
