package gate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt asks questions on out and reads answers line by line from in. Only
// "yes" (case-insensitive) counts as confirmation; EOF counts as "no".
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return false, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}

// Always answers every question with a fixed value.
type Always bool

func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// ErrInterrupted is returned by a context-bound Confirmer when its context
// ends before an answer was read.
var ErrInterrupted = errors.New("interrupted while waiting for confirmation")

type contextConfirmer struct {
	ctx context.Context
	c   Confirmer
}

// WithContext makes c give up waiting for an answer once ctx is done. The
// underlying read is left behind.
func WithContext(ctx context.Context, c Confirmer) Confirmer {
	return &contextConfirmer{ctx: ctx, c: c}
}

func (cc *contextConfirmer) Confirm(question string) (bool, error) {
	type answer struct {
		ok  bool
		err error
	}

	answers := make(chan answer, 1)
	go func() {
		ok, err := cc.c.Confirm(question)
		answers <- answer{ok, err}
	}()

	select {
	case a := <-answers:
		return a.ok, a.err
	case <-cc.ctx.Done():
		return false, ErrInterrupted
	}
}
