// Package prompt composes the instruction text sent to the chat model, for
// both fresh generations and assistant chat turns.
package prompt

import (
	"fmt"
	"strings"

	"caseforge/internal/heuristics"
)

// Output format selectors for a generation request.
const (
	FormatDefault = "default"
	FormatGherkin = "gherkin"
	FormatCustom  = "custom"
)

// Request carries everything a generation prompt is built from.
type Request struct {
	Requirements string
	FormatType   string
	Context      string
	ExampleCase  string
}

// The built-in example blocks double as format templates. They are part of
// the product's output contract; do not reword them.
const exampleFormatFR = `
**Cas fonctionnels**
Scenario (1) : Connexion OK avec des identifiants valides.
Précondition : L'utilisateur est inscrit avec un e-Mail valide et un MP.
Etapes :
    1. Accéder à la page de connexion.
    2. Saisir l'e-Mail et le MP valides.
    3. Cliquer sur "Se connecter".
Résultat attendu : L'utilisateur est redirigé vers la page d'accueil.

Scenario (2) : Erreur de connexion avec des identifiants invalides.
Précondition : L'utilisateur a un e-Mail valide mais un mot de passe invalide.
Etapes :
    1. Accéder à la page de connexion.
    2. Saisir un e-Mail valide et un MP invalide.
    3. Cliquer sur "Se connecter".
Résultat attendu : Un message d'erreur est affiché, l'utilisateur reste sur la page de connexion.
`

const exampleFormatEN = `
**Functional Test Cases**
Scenario (1): Successful login with valid credentials.
Precondition: User is registered with a valid email and password.
Steps:
    1. Access the login page.
    2. Enter valid email and password.
    3. Click on "Login".
Expected Result: User is redirected to the home page.

Scenario (2): Failed login with invalid credentials.
Precondition: User has a valid email but an incorrect password.
Steps:
    1. Access the login page.
    2. Enter valid email and invalid password.
    3. Click on "Login".
Expected Result: An error message is displayed, and the user remains on the login page.
`

// Generation builds the instruction for one test-case generation call. The
// format block is the custom example when supplied, a gherkin placeholder for
// gherkin requests without one, or the locale-matched built-in example. The
// locale follows the detected language of context+requirements, defaulting
// to French. Requirement text passes through unescaped; stray fences inside
// it are accepted tooling risk.
func Generation(req Request) string {
	var exampleFormat string
	switch {
	case req.FormatType == FormatCustom && strings.TrimSpace(req.ExampleCase) != "":
		exampleFormat = req.ExampleCase
	case req.FormatType == FormatGherkin:
		if strings.TrimSpace(req.ExampleCase) != "" {
			exampleFormat = req.ExampleCase
		} else {
			exampleFormat = "Gherkin format"
		}
	default:
		if heuristics.DetectLanguage(req.Context+" "+req.Requirements) == heuristics.LangEN {
			exampleFormat = exampleFormatEN
		} else {
			exampleFormat = exampleFormatFR
		}
	}

	contextLine := ""
	if req.Context != "" {
		contextLine = "Functional context: " + req.Context
	}

	return fmt.Sprintf(`
Generate test cases for the following requirement using the specified format.
%s
Requirement: %s
Format:
%s
`, contextLine, req.Requirements, exampleFormat)
}
