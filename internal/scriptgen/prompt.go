package scriptgen

import (
	"fmt"
	"strings"
)

// DraftRequest holds the validated inputs for one script draft.
type DraftRequest struct {
	Topic           string
	DurationSeconds int
	Resolution      string
}

// The render backend constrains clip lengths: the 1080p tier renders fixed
// 8-second clips, the 720p tier may choose 4 or 8 seconds per scene.
const baselineSceneDuration = 8

// inferLanguage picks the voiceover language from the topic text. English
// unless the caller asked for something else in the topic itself.
func inferLanguage(topic string) string {
	lower := strings.ToLower(topic)
	switch {
	case strings.Contains(lower, "hindi"):
		return "Hindi"
	case strings.Contains(lower, "spanish"):
		return "Spanish"
	default:
		return "English"
	}
}

// BuildDraftPrompt constructs the directive prompt for the text-generation
// service. The reply must be a JSON array with one object per scene.
func BuildDraftPrompt(req DraftRequest) string {
	var durationInstruction, durationPlaceholder string
	if req.Resolution == "720p" {
		durationInstruction = "For each scene, you MUST decide the duration. Choose either 4 or 8 seconds based on the pacing."
		durationPlaceholder = "4 or 8"
	} else {
		durationInstruction = "Each scene MUST be exactly 8 seconds long."
		durationPlaceholder = "8"
	}

	language := inferLanguage(req.Topic)

	return fmt.Sprintf(`You are a world-class Film Director and Cinematographer.
Your task is to create a highly detailed, cinematic, and ultra-realistic script for a video about: %q.
The total video length should be approximately %d seconds.
%s

### INSTRUCTIONS FOR QUALITY:
1. VISUALS: Do NOT use generic terms like "a man walking". Use specific details: "A weathered man in his 40s, wearing a tattered flannel shirt, trudges heavily...".
2. CAMERA: Use professional terminology (Dolly zoom, Rack focus, Low angle, Anamorphic lens flare).
3. LIGHTING: Describe the light quality (Golden hour, Blue hour, Harsh noon, Soft diffused window light).
4. AUDIO: Design a complete soundscape.
5. VOICEOVER: ALWAYS generate a compelling voiceover script relevant to the scene. Do not leave it blank.
6. SAFETY & COMPLIANCE: DO NOT use real names of famous people or historical figures in 'visual_prompt', 'scene_description', or 'visual_details'.
   The video generation model will BLOCK requests with real names. INSTEAD, describe the person visually.
   You MAY use the real name in the 'voiceover' script, just not in the visual directives.
7. CONSISTENCY IS KING: the field 'visual_details.character' MUST BE IDENTICAL, byte for byte, in every single scene. Write the character description once and copy it into every scene.
8. LANGUAGE: the 'audio_design.voiceover.script' MUST be written in %s.

### REQUIRED JSON STRUCTURE:
Respond with a JSON array. For EACH scene, provide an object with this EXACT structure:

[
  {
    "id": 1,
    "scene_heading": "EXT. LOCATION - TIME",
    "prompt": {
      "scene_description": "Precise description of what happens.",
      "visual_details": {"environment": "...", "character": "STRICTLY CONSISTENT across scenes", "props": "..."},
      "camera_direction": {"movement": "...", "framing": "...", "focus": "...", "lens": "..."},
      "motion_and_actions": {"character_action": "...", "environment_motion": "..."},
      "audio_design": {
        "music": {"enabled": true, "style": "...", "intensity": "..."},
        "ambient_sfx": {"wind": "...", "environment": "..."},
        "voiceover": {"enabled": true, "language": %q, "script": "The spoken words.", "tone": "...", "disable_lip_sync": false}
      },
      "language_preferences": {"narration_language": %q, "subtitle_language": "English", "tone": "..."},
      "style": {"cinematic_style": "...", "color_grade": "...", "quality": "..."},
      "technical_preferences": {"frame_rate": "24fps", "resolution": %q, "stabilization": "High"},
      "continuity_rules": ["Character appearance MUST match Scene 1.", "Lighting direction must remain consistent."]
    },
    "visual_prompt": "A text-to-video prompt string combining environment, character, camera and style. NO REAL NAMES.",
    "duration": %s
  }
]`,
		req.Topic, req.DurationSeconds, durationInstruction, language,
		language, language, req.Resolution, durationPlaceholder)
}
