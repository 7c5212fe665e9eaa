package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineReader reads prompt answers from the command input. It is shared by
// all prompts of a command so buffered input is not lost between them.
type lineReader struct {
	in  io.Reader
	out io.Writer
	br  *bufio.Reader
}

func newLineReader(in io.Reader, out io.Writer) *lineReader {
	return &lineReader{in: in, out: out, br: bufio.NewReader(in)}
}

func (r *lineReader) line() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// ask prints label and reads one line.
func (r *lineReader) ask(label string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", label)
	s, err := r.line()
	return strings.TrimSpace(s), err
}

// secret reads a password, masked when the input is a terminal.
func (r *lineReader) secret(label string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", label)
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return r.line()
}
