package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

const selectionsYAML = `schoolName: Acme U
universityWebsite: https://www.acme.edu
selections:
  - {questionCode: Q5, optionCode: Q5A, label: Tuition}
  - {questionCode: Q5, optionCode: Q5B, label: Housing, audience: graduate}
`

func writeSelections(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSearchCmd_YAML(t *testing.T) {
	provider := setupTestServices(t)

	out, err := executeCommand(t, "search", "--file", writeSelections(t, selectionsYAML))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Acme U Tuition", "Acme U graduate Housing"}, provider.Queries())
	assert.Contains(t, out, "Q5A Tuition")
	assert.Contains(t, out, "* 1. https://www.acme.edu/tuition")
	assert.Contains(t, out, "2. https://bursar.acme.edu/rates")
	assert.NotContains(t, out, "blog.example.com")
	assert.Contains(t, out, "Q5B Housing [graduate]")
	assert.Contains(t, out, "https://housing.acme.edu/grad")
}

func TestSearchCmd_JSONFromStdin(t *testing.T) {
	setupTestServices(t)
	input := `{"schoolName":"Acme U","selections":[{"questionCode":"Q5","optionCode":"Q5A","label":"Tuition"}]}`

	out, err := executeCommandWithInput(t, input, "search", "-f", "-", "--json")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Len(t, results[0].Options, 3, "no website means no filtering")
	assert.Equal(t, "https://www.acme.edu/tuition", results[0].URLValue())
	assert.Nil(t, results[0].Audience)
}

func TestSearchCmd_SchoolOverride(t *testing.T) {
	provider := setupTestServices(t)

	out, err := executeCommand(t, "search", "--file", writeSelections(t, selectionsYAML), "--school", "Other U")

	require.NoError(t, err)
	assert.Contains(t, provider.Queries(), "Other U Tuition")
	assert.Contains(t, out, domain.NoResultsText)
}

func TestSearchCmd_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)

	_, err = executeCommand(t, "search", "--file", writeSelections(t, "schoolName: Acme U\nselections: []\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = executeCommand(t, "search", "--file", writeSelections(t, "selections: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode selections")
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "search", "--file", "x.yaml")

	assert.EqualError(t, err, "search service not configured")
}
