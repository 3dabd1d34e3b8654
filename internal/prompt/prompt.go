package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a valid answer was given.
var ErrNoAnswer = errors.New("no answer")

var answers = map[string]bool{"y": true, "n": false}

// Confirm asks question on out until in yields "y" or "n" (any case).
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprintf(out, "%s [Y/n] ", question); err != nil {
			return false, fmt.Errorf("write prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, fmt.Errorf("read answer: %w", err)
			}
			return false, ErrNoAnswer
		}
		if answer, ok := answers[strings.ToLower(strings.TrimSpace(scanner.Text()))]; ok {
			return answer, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter 'y' or 'n' (not case sensitive).")
	}
}
