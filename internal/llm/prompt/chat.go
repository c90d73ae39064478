package prompt

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// ChatContext carries one chat turn's inputs after the orchestrator has
// resolved the optional project and requirement linkage.
type ChatContext struct {
	Message   string
	TestCases string

	HasProject     bool
	ProjectName    string
	ProjectContext string

	HasRequirement         bool
	RequirementTitle       string
	RequirementDescription string

	// DirectMode instructs the assistant to return the full replacement
	// document instead of commentary.
	DirectMode bool
	// IsModification marks the message as an edit request (heuristic).
	IsModification bool
}

// Chat assembles the assistant context for one turn. Section order matches
// the established contract: persona, optional project line, optional
// requirement block, fenced current test cases, user request, and the
// reinforced modification directives when an edit is asked for in direct
// mode.
func Chat(cc ChatContext) string {
	var parts []string
	if cc.DirectMode {
		parts = []string{
			"You are a test case assistant. Your primary job is to directly modify test cases based on user requests.",
			"IMPORTANT: When the user asks for changes, you MUST output the COMPLETE updated test cases in a code block.",
			"Always add ```<language> before and ``` after the code block.",
			"Include ALL test cases in your output, not just the modified ones.",
			"After showing the updated test cases, add a brief confirmation message like 'Modifications appliquées.'",
			"DO NOT explain what changes you're making beforehand - show the complete updated test cases immediately.",
		}
	} else {
		parts = []string{
			"You are a test case assistant helping to improve test cases.",
			"When suggesting changes, explain your reasoning clearly.",
		}
	}

	if cc.HasProject {
		parts = append(parts, fmt.Sprintf("Project Context: %s - %s", cc.ProjectName, cc.ProjectContext))
	}
	if cc.HasRequirement {
		parts = append(parts, fmt.Sprintf("Requirement: %s\n%s", cc.RequirementTitle, cc.RequirementDescription))
	}

	parts = append(parts, fmt.Sprintf("Current test cases:\n```\n%s\n```", cc.TestCases))
	parts = append(parts, fmt.Sprintf("User request: %s", cc.Message))

	if cc.IsModification && cc.DirectMode {
		parts = append(parts, "This is a modification request. You MUST return the COMPLETE updated test cases in a code block.")
		parts = append(parts, "IMPORTANT: Respond ONLY with:\n1. The COMPLETE updated test cases in a code block\n2. Exactly: 'Modifications appliquées.'")
	}

	return strings.Join(parts, "\n\n")
}

// Exchange is one prior message of the conversation, chronological order.
type Exchange struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Messages maps prior exchanges plus the composed turn prompt into the model
// message sequence. Unknown roles are treated as user messages.
func Messages(history []Exchange, turnPrompt string) []*schema.Message {
	out := make([]*schema.Message, 0, len(history)+1)
	for _, ex := range history {
		if strings.TrimSpace(ex.Content) == "" {
			continue
		}
		if ex.Role == "assistant" {
			out = append(out, schema.AssistantMessage(ex.Content, nil))
			continue
		}
		out = append(out, schema.UserMessage(ex.Content))
	}
	return append(out, schema.UserMessage(turnPrompt))
}
