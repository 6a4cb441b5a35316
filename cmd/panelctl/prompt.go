package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPrompt reads passwords without echo when stdin is a terminal and
// falls back to plain lines otherwise, so panelctl can be scripted.
type terminalPrompt struct {
	in     *os.File
	lines  *bufio.Reader
	output io.Writer
}

func newTerminalPrompt(in *os.File, output io.Writer) *terminalPrompt {
	return &terminalPrompt{in: in, lines: bufio.NewReader(in), output: output}
}

func (p *terminalPrompt) Password(label string) (string, error) {
	fmt.Fprintf(p.output, "%s: ", label)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(p.output)
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := p.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
