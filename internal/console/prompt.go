package console

import (
	"context"
	"io"
	"strings"

	"golang.org/x/term"
)

// Printer is a function compatible with logger.Notice
type Printer func(ctx context.Context, msg any, args ...any)

// QuestionPrompt asks a Yes/No question and reads a single key from in.
// defaultValue decides what Enter means ("y", "n", or "" to ignore Enter).
// forceYes answers Yes without asking. A terminal in is put in raw mode.
func QuestionPrompt(ctx context.Context, in io.Reader, printer Printer, question string, defaultValue string, forceYes bool) bool {
	if forceYes {
		return true
	}

	ynPrompt := "[YN]"
	if strings.EqualFold(defaultValue, "y") {
		ynPrompt = "[Yn]"
	} else if strings.EqualFold(defaultValue, "n") {
		ynPrompt = "[yN]"
	}
	printer(ctx, question+" "+ynPrompt)

	if f, ok := in.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if oldState, err := term.MakeRaw(fd); err == nil {
				defer func() { _ = term.Restore(fd, oldState) }()
			}
		}
	}

	answer := readAnswer(in, defaultValue)
	if answer {
		printer(ctx, "Answered: {{_Yes_}}Yes{{|-|}}")
	} else {
		printer(ctx, "Answered: {{_No_}}No{{|-|}}")
	}
	return answer
}

func readAnswer(in io.Reader, defaultValue string) bool {
	b := make([]byte, 1)
	for {
		if _, err := in.Read(b); err != nil {
			// No more input: fall back to the default, or No.
			return strings.EqualFold(defaultValue, "y")
		}
		switch c := b[0]; {
		case c == '\r' || c == '\n':
			if strings.EqualFold(defaultValue, "y") {
				return true
			}
			if strings.EqualFold(defaultValue, "n") {
				return false
			}
		case c == 'y' || c == 'Y':
			return true
		case c == 'n' || c == 'N':
			return false
		case c == 3:
			// Ctrl+C in raw mode
			return false
		}
	}
}
