package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_NoFence(t *testing.T) {
	_, ok := Extract("I suggest adding a scenario for expired passwords.")
	assert.False(t, ok)
}

func TestExtract_FenceWithLanguageTag(t *testing.T) {
	body, ok := Extract("Here you go:\n```gherkin\nScenario: login\n```\nDone.")
	assert.True(t, ok)
	assert.Equal(t, "Scenario: login", body)
}

func TestExtract_FirstFenceWins(t *testing.T) {
	body, ok := Extract("```\nfirst\n```\nand also\n```\nsecond\n```")
	assert.True(t, ok)
	assert.Equal(t, "first", body)
}

func TestExtract_TrimsWhitespace(t *testing.T) {
	body, ok := Extract("```\n\n  Scenario (1): ok  \n\n```")
	assert.True(t, ok)
	assert.Equal(t, "Scenario (1): ok", body)
}

func TestIsUpdate_IdenticalContentIsNotAnUpdate(t *testing.T) {
	current := "Scenario (1): ok"
	body, ok := Extract("```\nScenario (1): ok\n```")
	assert.True(t, ok)
	assert.False(t, IsUpdate(body, current))
}

func TestIsUpdate_EmptyCandidateIsNotAnUpdate(t *testing.T) {
	assert.False(t, IsUpdate("", "anything"))
}

func TestIsUpdate_ChangedContent(t *testing.T) {
	assert.True(t, IsUpdate("Scenario (2): changed", "Scenario (1): ok"))
}
