package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPriority_HighTerm(t *testing.T) {
	assert.Equal(t, "high", DetectPriority("This is urgent and nothing else"))
}

func TestDetectPriority_LowTerms(t *testing.T) {
	assert.Equal(t, "low", DetectPriority("an optional, nice to have improvement"))
}

func TestDetectPriority_EqualCountsMedium(t *testing.T) {
	// one high term, one low term
	assert.Equal(t, "medium", DetectPriority("must be done eventually"))
}

func TestDetectPriority_EmptyIsMedium(t *testing.T) {
	assert.Equal(t, "medium", DetectPriority(""))
}

func TestDetectPriority_FrenchMandatoryIsHigh(t *testing.T) {
	assert.Equal(t, "high", DetectPriority("Le système doit valider obligatoirement l'email"))
}

func TestDetectPriority_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "high", DetectPriority("URGENT: review before release"))
}

func TestDetectLanguage_English(t *testing.T) {
	assert.Equal(t, LangEN, DetectLanguage("The user must be able to log in with a valid email address and password"))
}

func TestDetectLanguage_French(t *testing.T) {
	assert.Equal(t, LangFR, DetectLanguage("L'utilisateur doit pouvoir se connecter avec une adresse e-mail valide"))
}

func TestDetectLanguage_EmptyDefaultsToFrench(t *testing.T) {
	assert.Equal(t, LangFR, DetectLanguage(""))
	assert.Equal(t, LangFR, DetectLanguage("   \t\n"))
}

func TestIsModificationRequest(t *testing.T) {
	assert.True(t, IsModificationRequest("please fix the third scenario"))
	assert.True(t, IsModificationRequest("Peux-tu AJOUTER un cas de test?"))
	assert.False(t, IsModificationRequest("looks good, thanks"))
}

func TestIsModificationRequest_SubstringMatchesAccepted(t *testing.T) {
	// "additional" contains "add"; the classifier accepts this false positive.
	assert.True(t, IsModificationRequest("any additional thoughts?"))
}
