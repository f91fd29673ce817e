package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	exts []string
	text string
	err  error
}

func (f *fakeExtractor) Extensions() []string { return f.exts }

func (f *fakeExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return f.text, f.err
}

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, []string{".docx", ".htm", ".html"}, r.Extensions())
	assert.True(t, r.Has("survey.DOCX"))
	assert.True(t, r.Has("/tmp/export.html"))
	assert.False(t, r.Has("survey.txt"))
}

func TestRead_Unregistered(t *testing.T) {
	r := NewRegistry()

	text, err := r.Read(context.Background(), "survey.txt", []byte("Q5: Pages?"))

	require.NoError(t, err)
	assert.Equal(t, "Q5: Pages?", text)
}

func TestRead_UsesExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeExtractor{exts: []string{".odt"}, text: "Q5A: Tuition"})

	text, err := r.Read(context.Background(), "Survey.ODT", []byte("binary"))

	require.NoError(t, err)
	assert.Equal(t, "Q5A: Tuition", text)
}

func TestRead_WrapsError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register(&fakeExtractor{exts: []string{".odt"}, err: boom})

	_, err := r.Read(context.Background(), "/data/survey.odt", nil)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "extract survey.odt")
}

func TestRegister_Replaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeExtractor{exts: []string{".odt"}, text: "first"})
	r.Register(&fakeExtractor{exts: []string{".ODT"}, text: "second"})

	text, err := r.Read(context.Background(), "a.odt", nil)

	require.NoError(t, err)
	assert.Equal(t, "second", text)
}
