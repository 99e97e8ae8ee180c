// Package mock provides a script provider for testing.
package mock

import (
	"context"

	"github.com/ankitpatil/director/pkg/models"
)

// MockProvider satisfies models.ScriptProvider for testing.
type MockProvider struct {
	Name_     string
	DraftFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Draft(ctx context.Context, prompt string) (string, error) {
	if m.DraftFunc != nil {
		return m.DraftFunc(ctx, prompt)
	}
	return "", nil
}

// NewMockProvider returns a provider whose reply is a fenced single-scene
// script, the shape a well-behaved model produces.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		DraftFunc: func(_ context.Context, _ string) (string, error) {
			return "Here is the script.\n```json\n" + SingleSceneJSON + "\n```", nil
		},
	}
}

// NewFailingProvider returns a provider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		DraftFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// SingleSceneJSON is a minimal well-formed one-scene script used across tests.
const SingleSceneJSON = `[
  {
    "id": 1,
    "scene_heading": "EXT. ROCKY COAST - DAWN",
    "prompt": {
      "scene_description": "A lighthouse beam sweeps across a calm sea as the sun rises.",
      "visual_details": {"environment": "Rocky coastline at dawn", "character": "A keeper in a wool coat", "props": "Brass lantern"},
      "camera_direction": {"movement": "Slow dolly forward", "framing": "Wide shot", "focus": "Deep focus", "lens": "35mm"},
      "motion_and_actions": {"character_action": "The keeper climbs the spiral stairs", "environment_motion": "Gulls wheel overhead"},
      "audio_design": {
        "music": {"enabled": true, "style": "Ambient strings", "intensity": "Low"},
        "ambient_sfx": {"waves": "gentle", "wind": "light"},
        "voiceover": {"enabled": true, "language": "English", "script": "Every dawn, the light goes out.", "tone": "Reflective", "disable_lip_sync": true}
      },
      "language_preferences": {"narration_language": "English", "subtitle_language": "English", "tone": "Calm"},
      "style": {"cinematic_style": "Documentary realism", "color_grade": "Warm amber", "quality": "4K"},
      "technical_preferences": {"frame_rate": "24fps", "resolution": "1080p", "stabilization": "High"},
      "continuity_rules": ["Lighting direction must remain consistent."]
    },
    "visual_prompt": "Documentary realism, warm amber grade. A lighthouse on a rocky coast at dawn, slow dolly forward, wide shot.",
    "duration": 8
  }
]`

// Compile-time check that MockProvider implements ScriptProvider.
var _ models.ScriptProvider = (*MockProvider)(nil)
