// Package envfile reads and writes the agent's line-oriented KEY=VALUE file.
// Values are stored verbatim: there is no quoting, so a value cannot contain a newline.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// LineKind distinguishes the three line forms of an env file.
type LineKind int

// Line kinds.
const (
	KindBlank LineKind = iota
	KindComment
	KindEntry
)

// Line is one rendered line of an env file.
type Line struct {
	Kind  LineKind
	Key   string
	Value string
	// Text is the comment body without the leading "# ".
	Text string
}

// Blank returns an empty line.
func Blank() Line {
	return Line{Kind: KindBlank}
}

// Comment returns a "# text" line.
func Comment(text string) Line {
	return Line{Kind: KindComment, Text: text}
}

// Entry returns a KEY=VALUE line.
func Entry(key string, value string) Line {
	return Line{Kind: KindEntry, Key: key, Value: value}
}

// String renders the line without a trailing newline.
func (l Line) String() string {
	switch l.Kind {
	case KindComment:
		return "# " + l.Text
	case KindEntry:
		return l.Key + "=" + l.Value
	default:
		return ""
	}
}

// Render joins lines with newlines and ends the file with one.
// It fails when an entry key is empty or any value spans lines.
func Render(lines []Line) (string, error) {
	var b strings.Builder
	for i, line := range lines {
		if line.Kind == KindEntry {
			if strings.TrimSpace(line.Key) == "" || strings.ContainsAny(line.Key, "= \t") {
				return "", fmt.Errorf(messages.EnvfileInvalidKeyFmt, i+1, line.Key)
			}
			if strings.ContainsAny(line.Value, "\r\n") {
				return "", fmt.Errorf(messages.EnvfileMultilineValueFmt, line.Key)
			}
		}
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Parse reads env content into a key-value map. Later duplicates win.
// content is the raw file content; returns parsed key/value pairs or an error.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}

	return env, nil
}

// parseLine parses a single line and returns key/value when present.
// Blank and comment lines report ok=false.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	return key, trimmed[idx+1:], true, nil
}
