package scriptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitpatil/director/internal/scriptgen/mock"
	"github.com/ankitpatil/director/pkg/models"
)

func TestParseScenes_WellFormedReply(t *testing.T) {
	reply := "Here you go:\n```json\n" + mock.SingleSceneJSON + "\n```"

	scenes, err := ParseScenes(reply)
	require.NoError(t, err)
	require.Len(t, scenes, 1)

	sc := scenes[0]
	assert.Equal(t, 1, sc.ID)
	assert.Equal(t, "EXT. ROCKY COAST - DAWN", sc.SceneHeading)
	assert.Equal(t, 8, sc.Duration)
	assert.Equal(t, models.SceneStatusPending, sc.Status)
	assert.NotEmpty(t, sc.VisualPrompt)
}

func TestParseScenes_FillsDefaults(t *testing.T) {
	reply := `[
		{"scene_heading": "INT. CABIN - NIGHT"},
		{"scene_heading": "EXT. FOREST - DAY", "duration": 4}
	]`

	scenes, err := ParseScenes(reply)
	require.NoError(t, err)
	require.Len(t, scenes, 2)

	// Missing ids fall back to 1-based position, missing durations to
	// the baseline.
	assert.Equal(t, 1, scenes[0].ID)
	assert.Equal(t, 2, scenes[1].ID)
	assert.Equal(t, 8, scenes[0].Duration)
	assert.Equal(t, 4, scenes[1].Duration)

	assert.NotNil(t, scenes[0].Prompt.AudioDesign.AmbientSFX)
	assert.NotNil(t, scenes[0].Prompt.ContinuityRules)
}

func TestParseScenes_Garbage(t *testing.T) {
	_, err := ParseScenes("```json\n[this is not json]\n```")
	assert.ErrorIs(t, err, ErrScriptUnparsable)
}

func TestParseScenes_EmptyArray(t *testing.T) {
	_, err := ParseScenes("```json\n[]\n```")
	assert.ErrorIs(t, err, ErrScriptUnparsable)
}

func TestSynthesizeVisualPrompt_VoiceoverAndLipSync(t *testing.T) {
	p := models.ScenePrompt{
		SceneDescription: "A keeper lights the lamp.",
		AudioDesign: models.AudioDesign{
			Voiceover: models.Voiceover{
				Enabled:        true,
				Language:       "English",
				Script:         "Every dawn, the light goes out.",
				DisableLipSync: true,
			},
		},
	}

	got := SynthesizeVisualPrompt(p)
	assert.Contains(t, got, "A keeper lights the lamp.")
	assert.Contains(t, got, `Voiceover (English): "Every dawn, the light goes out."`)
	assert.Contains(t, got, "does not lip-sync")
}

func TestSynthesizeVisualPrompt_NoVoiceoverWhenDisabled(t *testing.T) {
	p := models.ScenePrompt{
		SceneDescription: "Waves crash against the rocks.",
		AudioDesign: models.AudioDesign{
			Voiceover: models.Voiceover{Enabled: false, Script: "unused"},
		},
	}

	got := SynthesizeVisualPrompt(p)
	assert.NotContains(t, got, "Voiceover")
}
