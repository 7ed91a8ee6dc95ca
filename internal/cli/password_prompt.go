package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNoTerminal = errors.New("a password prompt needs an interactive terminal")

// readLine reads up to the next newline one byte at a time so nothing past
// the line is consumed before the confirmation prompt.
func readLine(input io.Reader) (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := input.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}

// terminalPasswordReader prompts on out and reads stdin with echo disabled.
func terminalPasswordReader(stdin *os.File, out io.Writer) func(prompt string) (string, error) {
	return func(prompt string) (string, error) {
		if stdin == nil {
			return "", errNoTerminal
		}
		fmt.Fprint(out, prompt)
		value, err := readHiddenLine(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return value, nil
	}
}
