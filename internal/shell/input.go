package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineSource yields one line of user input at a time and owns the
// writer that shell output must go through.
type lineSource interface {
	ReadLine() (string, error)
	Output() io.Writer
	Close() error

	// Interrupt unblocks a pending ReadLine if it can, and reports
	// whether it did.
	Interrupt() bool
}

// openSource picks a raw-mode terminal with line editing and history
// when stdin is a TTY, and a plain buffered reader otherwise.
func openSource(stdin io.Reader, stdout io.Writer, prompt string) (lineSource, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newTerminalSource(f, stdout, prompt)
	}
	return &plainSource{in: stdin, r: bufio.NewReader(stdin), w: stdout, prompt: prompt}, nil
}

// ── plain ────────────────────────────────────────────────────────────

type plainSource struct {
	in     io.Reader
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

func (p *plainSource) ReadLine() (string, error) {
	if p.prompt != "" {
		fmt.Fprint(p.w, p.prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *plainSource) Output() io.Writer { return p.w }

// Close leaves the caller's reader open.
func (p *plainSource) Close() error { return nil }

// Interrupt closes the underlying reader when it is closable.  Files are
// skipped: closing a blocking descriptor does not wake a pending read.
func (p *plainSource) Interrupt() bool {
	if _, ok := p.in.(*os.File); ok {
		return false
	}
	c, ok := p.in.(io.Closer)
	if !ok {
		return false
	}
	_ = c.Close()
	return true
}

// ── terminal ─────────────────────────────────────────────────────────

type terminalSource struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

func newTerminalSource(f *os.File, stdout io.Writer, prompt string) (*terminalSource, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	rw := struct {
		io.Reader
		io.Writer
	}{f, stdout}
	return &terminalSource{fd: fd, state: state, t: term.NewTerminal(rw, prompt)}, nil
}

// ReadLine returns io.EOF on Ctrl-D (empty line) and Ctrl-C.
func (ts *terminalSource) ReadLine() (string, error) { return ts.t.ReadLine() }

// Output translates "\n" to "\r\n" while the terminal is raw.
func (ts *terminalSource) Output() io.Writer { return ts.t }

func (ts *terminalSource) Close() error { return term.Restore(ts.fd, ts.state) }

// Interrupt cannot wake a read on the controlling terminal; the pending
// keystroke read ends with the process.
func (ts *terminalSource) Interrupt() bool { return false }

// ── reader ───────────────────────────────────────────────────────────

type lineResult struct {
	line string
	err  error
}

// lineReader runs ReadLine on one goroutine so a blocked read can race
// ctx.  Lines are read only on request, so nothing is consumed ahead of
// the loop.
type lineReader struct {
	src  lineSource
	req  chan struct{}
	res  chan lineResult
	quit chan struct{}
	done chan struct{}

	pending bool // a request is out and its result not yet taken
}

func startReader(src lineSource) *lineReader {
	r := &lineReader{
		src:  src,
		req:  make(chan struct{}, 1),
		res:  make(chan lineResult, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *lineReader) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		case <-r.req:
		}
		line, err := r.src.ReadLine()
		r.res <- lineResult{line, err}
	}
}

// next waits for one line or for ctx, whichever comes first.
func (r *lineReader) next(ctx context.Context) (string, error) {
	r.req <- struct{}{}
	r.pending = true
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-r.res:
		r.pending = false
		return res.line, res.err
	}
}

// stop ends the reader goroutine.  A read still pending is interrupted
// and waited for when the source supports it; an idle reader always
// exits.
func (r *lineReader) stop() {
	close(r.quit)
	if r.pending && !r.src.Interrupt() {
		return
	}
	<-r.done
}
