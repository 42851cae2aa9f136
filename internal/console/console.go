// Package console renders the colour tags used in log and prompt messages.
//
// Two tag forms are understood:
//
//	{{_File_}}     semantic tag, looked up by name
//	{{|red::B|}}   direct style, fg:bg:flags; {{|-|}} resets
//
// Tags are turned into ANSI sequences when stdout is a terminal and removed
// otherwise.
package console

import (
	"os"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

var (
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)
	directRegex   = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]+)\|\}\}`)
	ansiRegex     = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	isTTY   bool
	profile termenv.Profile
)

func init() {
	if stat, err := os.Stdout.Stat(); err == nil {
		isTTY = (stat.Mode() & os.ModeCharDevice) != 0
	}
	profile = detectProfile()
}

// SetTTY forces the terminal status and returns the previous value.
func SetTTY(tty bool) bool {
	old := isTTY
	isTTY = tty
	return old
}

// SetProfile forces the colour profile and returns the previous one.
func SetProfile(p termenv.Profile) termenv.Profile {
	old := profile
	profile = p
	return old
}

// detectProfile honours NO_COLOR, COLORTERM and TERM before asking termenv.
func detectProfile() termenv.Profile {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "4bit", "16color", "8color", "3bit":
		return termenv.ANSI
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case strings.Contains(term, "16color"):
		return termenv.ANSI
	case term == "dumb":
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// Parse replaces tags with ANSI sequences, or strips them when colour is off.
func Parse(text string) string {
	if !isTTY || profile == termenv.Ascii {
		return Strip(text)
	}
	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		style, ok := semanticStyles[strings.ToLower(match[3:len(match)-3])]
		if !ok {
			return ""
		}
		return styleToANSI(style)
	})
	return directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return styleToANSI(match[3 : len(match)-3])
	})
}

// Strip removes tags and ANSI sequences, leaving plain text.
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return ansiRegex.ReplaceAllString(text, "")
}

// styleToANSI converts "fg:bg:flags" into escape codes.
func styleToANSI(style string) string {
	if style == "-" {
		return CodeReset
	}
	parts := strings.Split(style, ":")
	var b strings.Builder
	if fg := strings.ToLower(parts[0]); fg != "" && fg != "-" {
		b.WriteString(colorCode(fg, false))
	}
	if len(parts) > 1 {
		if bg := strings.ToLower(parts[1]); bg != "" && bg != "-" {
			b.WriteString(colorCode(bg, true))
		}
	}
	if len(parts) > 2 {
		for _, f := range parts[2] {
			b.WriteString(flagCodes[f])
		}
	}
	return b.String()
}

func colorCode(name string, background bool) string {
	if strings.HasPrefix(name, "#") {
		c := profile.Color(name)
		if c == nil {
			return ""
		}
		seq := c.Sequence(background)
		if seq == "" {
			return ""
		}
		return "\033[" + seq + "m"
	}
	if background {
		return bgCodes[name]
	}
	return fgCodes[name]
}
