package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Len(t, c.All(), len(Definitions))
	for _, cat := range Categories {
		assert.NotEmpty(t, c.ByCategory(cat), "category %s", cat)
	}

	essay, ok := c.Lookup("essay-writer")
	require.True(t, ok)
	assert.Equal(t, CategoryStudent, essay.Category)
	assert.Equal(t, KindText, essay.Kind)

	img, ok := c.Lookup("image-generator")
	require.True(t, ok)
	assert.Equal(t, KindImage, img.Kind)

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
}

func TestEveryToolRendersWithRequiredFields(t *testing.T) {
	for _, tool := range Default().All() {
		if !tool.Supported() {
			continue
		}
		values := map[string]string{}
		for _, f := range tool.Fields {
			if f.Required {
				values[f.Name] = "sample"
			}
		}
		t.Run(tool.ID, func(t *testing.T) {
			p, err := tool.Prompt(values)
			require.NoError(t, err)
			assert.NotEmpty(t, p.User)
		})
	}
}

func TestPrompt_DefaultsAndHelpers(t *testing.T) {
	tool, ok := Default().Lookup("debate-writer")
	require.True(t, ok)

	p, err := tool.Prompt(map[string]string{"topic": "  School uniforms  "})
	require.NoError(t, err)
	assert.Contains(t, p.User, `in favor of the motion: "School uniforms"`)
	assert.Contains(t, p.User, "Class 10 level")

	p, err = tool.Prompt(map[string]string{"topic": "Homework", "stance": "neutral", "level": "university"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "presenting both sides of")
	assert.Contains(t, p.User, "University level")
}

func TestPrompt_Validation(t *testing.T) {
	tool, ok := Default().Lookup("essay-writer")
	require.True(t, ok)

	_, err := tool.Prompt(map[string]string{"topic": "   "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "topic", verr.Field)
	assert.Equal(t, "Please fill in the Essay Topic field.", err.Error())

	_, err = tool.Prompt(map[string]string{"topic": "Rivers", "type": "limerick"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "limerick", verr.Value)
}

func TestPrompt_OptionalBlocks(t *testing.T) {
	tool, ok := Default().Lookup("blog-post")
	require.True(t, ok)

	p, err := tool.Prompt(map[string]string{"topic": "Tea"})
	require.NoError(t, err)
	assert.NotContains(t, p.User, "keywords")

	p, err = tool.Prompt(map[string]string{"topic": "Tea", "keywords": "green, oolong"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "green, oolong")
}

func TestPrompt_SystemPrompt(t *testing.T) {
	tool, ok := Default().Lookup("ai-math-solver")
	require.True(t, ok)

	p, err := tool.Prompt(map[string]string{"problem": "2+2"})
	require.NoError(t, err)
	assert.Contains(t, p.System, "mathematics teacher")
	assert.Contains(t, p.User, "in English")
}

func TestMusicIsUnsupported(t *testing.T) {
	tool, ok := Default().Lookup("text-to-music")
	require.True(t, ok)
	assert.False(t, tool.Supported())

	_, err := tool.Prompt(map[string]string{"prompt": "calm piano"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNewCatalogErrors(t *testing.T) {
	_, err := NewCatalog(Definition{ID: "a", Template: "x"}, Definition{ID: "a", Template: "y"})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewCatalog(Definition{ID: "b", Template: "{{.x"})
	assert.ErrorContains(t, err, "parse prompt")

	_, err = NewCatalog(Definition{Template: "x"})
	assert.Error(t, err)
}

func TestCatalog_TranslationAndReferenceTools(t *testing.T) {
	c := Default()

	translator, ok := c.Lookup("translator")
	require.True(t, ok)
	assert.Equal(t, CategoryUtility, translator.Category)
	p, err := translator.Prompt(map[string]string{"text": "Good morning"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "From: Auto Detect\nTo: Spanish\nText: Good morning")

	_, err = translator.Prompt(map[string]string{"text": " "})
	assert.EqualError(t, err, "Please fill in the Text to Translate field.")
	_, err = translator.Prompt(map[string]string{"text": "Hi", "to": "Auto Detect"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "to", verr.Field)

	paraphraser, ok := c.Lookup("paraphraser")
	require.True(t, ok)
	p, err = paraphraser.Prompt(map[string]string{"text": "The cat sat.", "mode": "Academic"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "using the Academic mode")
	p, err = paraphraser.Prompt(map[string]string{"text": "The cat sat."})
	require.NoError(t, err)
	assert.Contains(t, p.User, "Mode: Standard")

	citation, ok := c.Lookup("citation-generator")
	require.True(t, ok)
	p, err = citation.Prompt(map[string]string{"source": "Title: Dune"})
	require.NoError(t, err)
	assert.Contains(t, p.User, "Source Type: Book\nCitation Style: APA (7th Edition)")
	assert.Contains(t, p.User, "formatted APA (7th Edition) citation")
}
