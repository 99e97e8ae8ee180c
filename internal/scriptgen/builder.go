package scriptgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ankitpatil/director/pkg/models"
)

// rawScene mirrors the drafting reply. Every field beyond id is optional;
// BuildScene fills defaults instead of failing.
type rawScene struct {
	ID           int                 `json:"id"`
	SceneHeading string              `json:"scene_heading"`
	Prompt       *models.ScenePrompt `json:"prompt"`
	VisualPrompt string              `json:"visual_prompt"`
	Duration     int                 `json:"duration"`
}

// ParseScenes extracts, parses, and builds typed scenes from a raw drafting
// reply. A parse failure here is a hard failure for the whole job.
func ParseScenes(text string) ([]models.Scene, error) {
	arr, err := ExtractSceneArray(text)
	if err != nil {
		return nil, err
	}

	var raw []rawScene
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptUnparsable, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: reply contained zero scenes", ErrScriptUnparsable)
	}

	scenes := make([]models.Scene, 0, len(raw))
	for i, r := range raw {
		scenes = append(scenes, buildScene(r, i+1))
	}
	return scenes, nil
}

// buildScene converts one raw scene into a typed Scene, defaulting every
// missing optional field. fallbackID is used when the reply omits ids.
func buildScene(r rawScene, fallbackID int) models.Scene {
	id := r.ID
	if id == 0 {
		id = fallbackID
	}

	var prompt models.ScenePrompt
	if r.Prompt != nil {
		prompt = *r.Prompt
	}
	if prompt.AudioDesign.AmbientSFX == nil {
		prompt.AudioDesign.AmbientSFX = map[string]string{}
	}
	if prompt.ContinuityRules == nil {
		prompt.ContinuityRules = []string{}
	}

	duration := r.Duration
	if duration == 0 {
		duration = baselineSceneDuration
	}

	visualPrompt := r.VisualPrompt
	if visualPrompt == "" {
		visualPrompt = SynthesizeVisualPrompt(prompt)
	}

	return models.Scene{
		ID:           id,
		SceneHeading: r.SceneHeading,
		Prompt:       prompt,
		VisualPrompt: visualPrompt,
		Duration:     duration,
		Status:       models.SceneStatusPending,
	}
}

// SynthesizeVisualPrompt flattens a structured scene prompt into the single
// directive string the render backend accepts. The backend has no separate
// audio channel, so the voiceover script and the lip-sync suppression marker
// ride along in the text.
func SynthesizeVisualPrompt(p models.ScenePrompt) string {
	var parts []string

	if p.Style.CinematicStyle != "" || p.Style.ColorGrade != "" {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s style, %s.", p.Style.CinematicStyle, p.Style.ColorGrade)))
	}
	if p.SceneDescription != "" {
		parts = append(parts, p.SceneDescription)
	}
	if p.VisualDetails.Environment != "" || p.VisualDetails.Character != "" {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s, %s.", p.VisualDetails.Environment, p.VisualDetails.Character)))
	}
	if p.CameraDirection != (models.CameraDirection{}) {
		parts = append(parts, fmt.Sprintf("%s, %s, %s, %s.",
			p.CameraDirection.Movement, p.CameraDirection.Framing,
			p.CameraDirection.Focus, p.CameraDirection.Lens))
	}
	if p.MotionAndActions.CharacterAction != "" || p.MotionAndActions.EnvironmentMotion != "" {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s %s",
			p.MotionAndActions.CharacterAction, p.MotionAndActions.EnvironmentMotion)))
	}

	vo := p.AudioDesign.Voiceover
	if vo.Enabled && vo.Script != "" {
		parts = append(parts, fmt.Sprintf("Voiceover (%s): %q.", vo.Language, vo.Script))
		if vo.DisableLipSync {
			parts = append(parts, "The character does not lip-sync the voiceover.")
		}
	}

	return strings.Join(parts, " ")
}
