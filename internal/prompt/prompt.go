// Package prompt asks the operator for values during an interactive fix.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"envcheck/internal/console"
)

// ErrCanceled is returned when the operator aborts a prompt.
var ErrCanceled = errors.New("prompt canceled")

// Prompter solicits a value for a key. Implementations return the raw answer;
// callers decide whether it is acceptable.
type Prompter interface {
	Prompt(ctx context.Context, key, description string) (string, error)
}

// Question builds the text shown for a key.
func Question(key, description string) string {
	if description != "" {
		return fmt.Sprintf("Enter value for %s (%s): ", key, description)
	}
	return fmt.Sprintf("Enter value for %s: ", key)
}

// Line reads one answer per line from a reader.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a prompter that writes questions to out and reads answers from in.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) Prompt(ctx context.Context, key, description string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	q := Question("{{_Var_}}"+key+"{{|-|}}", description)
	if _, err := fmt.Fprint(l.out, console.Parse(q)); err != nil {
		return "", err
	}

	answer, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && answer != "" {
			return strings.TrimRight(answer, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading value for %s: %w", key, io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("reading value for %s: %w", key, err)
	}
	return strings.TrimRight(answer, "\r\n"), nil
}

// Scripted answers from a fixed list, in order. It records every key asked.
type Scripted struct {
	Answers []string
	Asked   []string
}

// NewScripted returns a prompter that replays answers.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) Prompt(ctx context.Context, key, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Asked = append(s.Asked, key)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no scripted answer left for %s: %w", key, io.ErrUnexpectedEOF)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
