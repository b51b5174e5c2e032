package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type prompter interface {
	Line(prompt string) (string, error)
	// Secret reads without echo. Callers wipe the result.
	Secret(prompt string) ([]byte, error)
}

// termPrompter reads lines from in and secrets from the terminal behind fd.
// When fd is not a terminal (piped input) secrets are read as plain lines.
type termPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newTermPrompter(in *bufio.Reader, out io.Writer, fd int) *termPrompter {
	return &termPrompter{in: in, out: out, fd: fd}
}

func (p *termPrompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(p.in)
}

func (p *termPrompter) Secret(prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return nil, err
	}

	if !isTerminal(p.fd) {
		line, err := readLine(p.in)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// readLine returns the next line without its newline. A final line without
// a newline is returned as is; EOF with nothing read is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
