package heuristics

import "strings"

// modificationKeywords flag a chat message as an edit request. Pure substring
// containment, so unrelated words embedding these terms match too; that is
// accepted behavior for this classifier.
var modificationKeywords = []string{
	"update", "change", "modify", "edit", "replace", "fix", "correct",
	"add", "remove", "delete",
	"ajouter", "modifier", "changer", "supprimer", "corriger",
}

// IsModificationRequest reports whether the message asks for test-case edits.
func IsModificationRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range modificationKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
