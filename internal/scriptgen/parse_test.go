package scriptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSceneArray_LabeledFence(t *testing.T) {
	text := "Sure, here is the script:\n```json\n[{\"id\": 1}]\n```\nLet me know!"

	got, err := ExtractSceneArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1}]`, got)
}

func TestExtractSceneArray_GenericFence(t *testing.T) {
	text := "```\n[{\"id\": 2}]\n```"

	got, err := ExtractSceneArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 2}]`, got)
}

func TestExtractSceneArray_BareBrackets(t *testing.T) {
	text := "The model sometimes skips fences entirely. [{\"id\": 3}] Hope this helps."

	got, err := ExtractSceneArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 3}]`, got)
}

func TestExtractSceneArray_PrefersLabeledFence(t *testing.T) {
	// A labeled fence wins even when bare brackets appear earlier.
	text := "ignore [this] aside\n```json\n[{\"id\": 4}]\n```"

	got, err := ExtractSceneArray(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 4}]`, got)
}

func TestExtractSceneArray_Empty(t *testing.T) {
	_, err := ExtractSceneArray("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyScript)
}

func TestExtractSceneArray_NoArray(t *testing.T) {
	_, err := ExtractSceneArray("I cannot write that script.")
	assert.ErrorIs(t, err, ErrScriptUnparsable)
}
