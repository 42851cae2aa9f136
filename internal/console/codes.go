package console

// Raw ANSI codes
const (
	CodeReset = "\033[0m"

	CodeBold             = "\033[1m"
	CodeDim              = "\033[2m"
	CodeUnderline        = "\033[4m"
	CodeReverse          = "\033[7m"
	CodeStrikethrough    = "\033[9m"
	CodeBoldOff          = "\033[22m"
	CodeUnderlineOff     = "\033[24m"
	CodeReverseOff       = "\033[27m"
	CodeStrikethroughOff = "\033[29m"

	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	CodeBlackBg   = "\033[40m"
	CodeRedBg     = "\033[41m"
	CodeGreenBg   = "\033[42m"
	CodeYellowBg  = "\033[43m"
	CodeBlueBg    = "\033[44m"
	CodeMagentaBg = "\033[45m"
	CodeCyanBg    = "\033[46m"
	CodeWhiteBg   = "\033[47m"
)

var fgCodes = map[string]string{
	"black":   CodeBlack,
	"red":     CodeRed,
	"green":   CodeGreen,
	"yellow":  CodeYellow,
	"blue":    CodeBlue,
	"magenta": CodeMagenta,
	"cyan":    CodeCyan,
	"white":   CodeWhite,
}

var bgCodes = map[string]string{
	"black":   CodeBlackBg,
	"red":     CodeRedBg,
	"green":   CodeGreenBg,
	"yellow":  CodeYellowBg,
	"blue":    CodeBlueBg,
	"magenta": CodeMagentaBg,
	"cyan":    CodeCyanBg,
	"white":   CodeWhiteBg,
}

// Flag characters: upper case turns an attribute on, lower case turns it off.
var flagCodes = map[rune]string{
	'B': CodeBold,
	'b': CodeBoldOff,
	'D': CodeDim,
	'U': CodeUnderline,
	'u': CodeUnderlineOff,
	'R': CodeReverse,
	'r': CodeReverseOff,
	'S': CodeStrikethrough,
	's': CodeStrikethroughOff,
}

// semanticStyles maps semantic tag names (lower case) to fg:bg:flags styles.
var semanticStyles = map[string]string{
	"applicationname": "cyan::B",
	"version":         "cyan",
	"file":            "cyan::B",
	"var":             "magenta",
	"value":           "green",
	"type":            "yellow",
	"url":             "cyan::U",
	"usercommand":     "yellow::B",
	"yes":             "green",
	"no":              "red",
	"notice":          "green",
	"warn":            "yellow",
	"error":           "red",
}
