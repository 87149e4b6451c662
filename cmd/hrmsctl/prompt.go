package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminal implements the list controller's Notifier and Confirmer over
// the command's streams.
type terminal struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	yes    bool
}

func newTerminal(c *cli) *terminal {
	return &terminal{in: bufio.NewReader(c.in), out: c.out, errOut: c.errOut, yes: c.opts.Yes}
}

func (t *terminal) Error(msg string) {
	fmt.Fprintln(t.errOut, "error:", msg)
}

func (t *terminal) Info(msg string) {
	fmt.Fprintln(t.out, msg)
}

// Confirm accepts y or yes. EOF counts as no.
func (t *terminal) Confirm(prompt string) bool {
	if t.yes {
		return true
	}
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
