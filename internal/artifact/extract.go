// Package artifact finds a complete replacement test-case document inside a
// free-form assistant reply: the first fenced block, if any, is the candidate.
package artifact

import (
	"regexp"
	"strings"
)

// fencedBlock matches the first triple-backtick block. The optional language
// tag on the opening line is discarded; only the body is captured.
var fencedBlock = regexp.MustCompile("```(?:.*?)\n([\\s\\S]*?)```")

// Extract returns the trimmed body of the first fenced block in response,
// and whether a block was present at all. A reply without any fence is
// commentary only.
func Extract(response string) (string, bool) {
	m := fencedBlock.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// IsUpdate reports whether candidate should replace current: it must be
// non-empty and textually different. Resubmitting an identical document is
// not an update, so unchanged replies never create history versions.
func IsUpdate(candidate, current string) bool {
	return candidate != "" && candidate != current
}
