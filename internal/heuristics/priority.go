package heuristics

import "strings"

// Keyword tables are fixed configuration: one point per listed term found in
// the lower-cased text, substring match. The lists mirror the ones the
// product has always shipped with, order and all.
var highPriorityKeywords = []string{
	"critique", "crucial", "urgent", "obligatoire", "immédiat", "vital",
	"impératif", "essentiel", "doit", "prioritaire", "sécurité", "fatal",
	"risque", "danger", "critical", "must", "required", "mandatory",
	"immediately", "security", "safety", "urgent", "high priority",
}

var lowPriorityKeywords = []string{
	"optionnel", "facultatif", "souhaitable", "suggéré", "bonus",
	"accessoire", "mineur", "pourrait", "éventuel", "agréable", "simple",
	"optional", "nice to have", "could", "minor", "suggested", "eventually",
	"future", "low priority", "when possible", "later",
}

// DetectPriority scores text against the high and low urgency tables and
// returns "high", "medium" or "low". Equal scores, including zero/zero,
// resolve to "medium".
func DetectPriority(text string) string {
	lower := strings.ToLower(text)

	highCount := 0
	for _, word := range highPriorityKeywords {
		if strings.Contains(lower, word) {
			highCount++
		}
	}
	lowCount := 0
	for _, word := range lowPriorityKeywords {
		if strings.Contains(lower, word) {
			lowCount++
		}
	}

	switch {
	case highCount > lowCount:
		return "high"
	case lowCount > highCount:
		return "low"
	default:
		return "medium"
	}
}
