// Package scaffold produces starter example files.
package scaffold

import (
	"fmt"
	"strings"

	"envcheck/internal/envfile"
)

const placeholderTpl = "<%s_VALUE>"

const template = `# Database Configuration
DB_HOST=localhost
# @type number
DB_PORT=5432
# @description database name
DB_NAME=myapp
DB_USER=postgres
DB_PASSWORD=your_password

# API Configuration
# @type url
API_URL=http://localhost:3000
API_KEY=your_api_key

# Feature Flags
# @type boolean
# @optional
DEBUG_MODE=false
# @type boolean
# @optional
ENABLE_CACHE=true

# Email Configuration
SMTP_HOST=smtp.example.com
# @type number
SMTP_PORT=587
# @type email
SMTP_USER=you@example.com
SMTP_PASS=your_password

# Redis Configuration
REDIS_HOST=localhost
# @type number
REDIS_PORT=6379
# @optional
REDIS_PASSWORD=

# Logging Configuration
# @description one of debug, info, warn, error
LOG_LEVEL=info
# @optional
LOG_FILE=app.log

# Security Configuration
JWT_SECRET=your_jwt_secret
# @type number
# @description session lifetime in seconds
SESSION_TIMEOUT=3600
`

// Template returns the default example file.
func Template() string {
	return template
}

// Placeholder is the value written for key in a derived example file.
func Placeholder(key string) string {
	return fmt.Sprintf(placeholderTpl, key)
}

// FromEnv derives an example file from a live one. Comments and blank lines
// are kept, each key is written once with a placeholder value, and keys whose
// live value is a boolean or a number get a @type annotation.
func FromEnv(live *envfile.File) string {
	lines := live.Lines
	if lines == nil {
		return fromRecords(live.Records)
	}

	seen := make(map[string]bool, len(live.Records))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		key, _, ok := envfile.ParseLine(line)
		if !ok {
			out = append(out, line)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		rec, _ := live.Lookup(key)
		for _, l := range entry(rec) {
			if strings.HasSuffix(line, "\r") {
				l += "\r"
			}
			out = append(out, l)
		}
	}
	text := strings.Join(out, "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

func fromRecords(records []envfile.Record) string {
	var b strings.Builder
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		for _, line := range entry(r) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func entry(r envfile.Record) []string {
	var lines []string
	switch t := envfile.InferType(r.Value); t {
	case envfile.TypeBoolean, envfile.TypeNumber:
		lines = append(lines, "# @type "+t.String())
	}
	return append(lines, r.Key+"="+Placeholder(r.Key))
}
