package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDictionary_EmbeddedDataIsValid(t *testing.T) {
	dict, err := LoadDictionary()
	require.NoError(t, err)

	canonical, ok := dict.Lookup("golang")
	require.True(t, ok)
	assert.Equal(t, "go", canonical)

	score, ok := dict.RelatedScore("javascript", "typescript")
	require.True(t, ok)
	assert.InDelta(t, 0.9, score, 0.001)

	assert.NotEmpty(t, dict.Keys())
}

func TestNewDictionary_LowerCasesEntries(t *testing.T) {
	dict, err := NewDictionary(
		map[string]string{"GoLang": "Go"},
		[]relatedPair{{A: "Go", B: "Rust", Score: 0.5}},
	)
	require.NoError(t, err)

	canonical, ok := dict.Lookup("golang")
	require.True(t, ok)
	assert.Equal(t, "go", canonical)

	score, ok := dict.RelatedScore("rust", "go")
	require.True(t, ok)
	assert.Equal(t, 0.5, score)
}

func TestNewDictionary_RejectsEmptyNames(t *testing.T) {
	_, err := NewDictionary(map[string]string{"golang": "  "}, nil)
	assert.Error(t, err)

	_, err = NewDictionary(nil, []relatedPair{{A: "go", B: "", Score: 0.5}})
	assert.Error(t, err)
}

func TestNewDictionary_RejectsOutOfRangeScore(t *testing.T) {
	_, err := NewDictionary(nil, []relatedPair{{A: "go", B: "rust", Score: 1.5}})
	assert.Error(t, err)

	_, err = NewDictionary(nil, []relatedPair{{A: "go", B: "rust", Score: -0.1}})
	assert.Error(t, err)
}

func TestRelatedScore_OrderIndependent(t *testing.T) {
	dict, err := LoadDictionary()
	require.NoError(t, err)

	forward, okForward := dict.RelatedScore("react", "react native")
	backward, okBackward := dict.RelatedScore("react native", "react")

	require.True(t, okForward)
	require.True(t, okBackward)
	assert.Equal(t, forward, backward)
}

func TestValidateSkillData_RejectsMalformedDocument(t *testing.T) {
	schema := `{
		"type": "object",
		"required": ["variants"],
		"properties": {
			"variants": {"type": "object"}
		}
	}`

	assert.NoError(t, validateSkillData(schema, `{"variants": {}}`))
	assert.Error(t, validateSkillData(schema, `{"variants": "not an object"}`))
	assert.Error(t, validateSkillData(schema, `{}`))
}
