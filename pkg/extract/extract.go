// Package extract narrows a free-text model reply down to the candidate JSON
// payload. It never fails: when nothing looks like a fenced block the whole
// reply is the candidate.
package extract

import (
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// JSON returns the interior of the first fenced code block, trimmed. Without a
// fenced block (or with an empty one) it returns the trimmed input.
func JSON(raw string) string {
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if inner := strings.TrimSpace(m[1]); inner != "" {
			return inner
		}
	}
	return strings.TrimSpace(raw)
}
