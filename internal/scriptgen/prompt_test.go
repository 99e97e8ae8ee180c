package scriptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferLanguage(t *testing.T) {
	assert.Equal(t, "Hindi", inferLanguage("A story about Diwali in Hindi"))
	assert.Equal(t, "Spanish", inferLanguage("spanish folk tale about the sea"))
	assert.Equal(t, "English", inferLanguage("A lighthouse at dawn"))
}

func TestBuildDraftPrompt_DurationPolicy(t *testing.T) {
	hd := BuildDraftPrompt(DraftRequest{Topic: "t", DurationSeconds: 60, Resolution: "1080p"})
	assert.Contains(t, hd, "exactly 8 seconds")

	sd := BuildDraftPrompt(DraftRequest{Topic: "t", DurationSeconds: 60, Resolution: "720p"})
	assert.Contains(t, sd, "Choose either 4 or 8 seconds")
}

func TestBuildDraftPrompt_CarriesTopicAndLanguage(t *testing.T) {
	p := BuildDraftPrompt(DraftRequest{Topic: "A folk tale in Hindi", DurationSeconds: 30, Resolution: "1080p"})

	assert.Contains(t, p, `"A folk tale in Hindi"`)
	assert.Contains(t, p, "MUST be written in Hindi")
	assert.Contains(t, p, "DO NOT use real names")
	assert.Contains(t, p, "IDENTICAL, byte for byte")
}
