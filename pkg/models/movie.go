// Package models contains shared data models used across the Director codebase.
package models

import "time"

// Movie job statuses. A job is created queued, drafts a script, pauses for
// human approval, films every scene, and ends completed or failed. There is
// no transition out of a terminal status.
const (
	JobStatusQueued             = "queued"
	JobStatusScripting          = "scripting"
	JobStatusWaitingForApproval = "waiting_for_approval"
	JobStatusFilming            = "filming"
	JobStatusCompleted          = "completed"
	JobStatusCompletedPartial   = "completed_partial"
	JobStatusFailed             = "failed"
)

// Scene statuses. Scenes are created pending during scripting and mutated
// only by the production pipeline; done and failed are terminal.
const (
	SceneStatusPending    = "pending"
	SceneStatusGenerating = "generating"
	SceneStatusDone       = "done"
	SceneStatusFailed     = "failed"
)

// MovieJob is one video-creation request, persisted as a single document in
// the job store. The render settings (Model, Resolution, AspectRatio) are
// fixed once production starts.
type MovieJob struct {
	JobID          string    `json:"job_id"`
	OwnerID        string    `json:"owner_id"`
	Topic          string    `json:"topic"`
	Status         string    `json:"status"`
	Progress       int       `json:"progress"`
	Scenes         []Scene   `json:"scenes"`
	FinalVideoPath string    `json:"final_video_path,omitempty"`
	Error          string    `json:"error,omitempty"`
	Model          string    `json:"model"`
	Resolution     string    `json:"resolution"`
	AspectRatio    string    `json:"aspect_ratio"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a snapshot safe to hand to API callers while the
// production goroutine keeps mutating the original.
func (j *MovieJob) Clone() *MovieJob {
	c := *j
	c.Scenes = append([]Scene(nil), j.Scenes...)
	return &c
}

// Terminal reports whether the job can no longer change state.
func (j *MovieJob) Terminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusCompletedPartial, JobStatusFailed:
		return true
	}
	return false
}

// Scene is one shot of the movie. ID is a 1-based sequence number that
// defines both render and stitch order.
type Scene struct {
	ID           int         `json:"id"`
	SceneHeading string      `json:"scene_heading"`
	Prompt       ScenePrompt `json:"prompt"`

	// VisualPrompt is the synthesized directive string sent to the video
	// backend. Derived from the structured prompt when the drafting stage
	// does not supply one.
	VisualPrompt string `json:"visual_prompt"`
	Duration     int    `json:"duration"`
	Status       string `json:"status"`
	VideoPath    string `json:"video_path,omitempty"`

	// IsExtension marks a render that continues the previous scene's
	// operation instead of starting a fresh sequence. An extension clip
	// already contains the footage of the clip it extends.
	IsExtension bool `json:"is_extension"`

	// OperationName is the opaque handle returned by the video backend,
	// used for polling and materialization.
	OperationName string `json:"operation_name,omitempty"`
}

// ScenePrompt is the structured shot description emitted by script drafting.
type ScenePrompt struct {
	SceneDescription    string              `json:"scene_description"`
	VisualDetails       VisualDetails       `json:"visual_details"`
	CameraDirection     CameraDirection     `json:"camera_direction"`
	MotionAndActions    MotionAndActions    `json:"motion_and_actions"`
	AudioDesign         AudioDesign         `json:"audio_design"`
	LanguagePreferences LanguagePreferences `json:"language_preferences"`
	Style               Style               `json:"style"`
	TechnicalPrefs      TechnicalPrefs      `json:"technical_preferences"`
	ContinuityRules     []string            `json:"continuity_rules"`
}

type VisualDetails struct {
	Environment string `json:"environment"`
	Character   string `json:"character"`
	Props       string `json:"props"`
}

type CameraDirection struct {
	Movement string `json:"movement"`
	Framing  string `json:"framing"`
	Focus    string `json:"focus"`
	Lens     string `json:"lens"`
}

type MotionAndActions struct {
	CharacterAction   string `json:"character_action"`
	EnvironmentMotion string `json:"environment_motion"`
}

type Music struct {
	Enabled   bool   `json:"enabled"`
	Style     string `json:"style"`
	Intensity string `json:"intensity"`
}

// Voiceover carries the spoken script. DisableLipSync suppresses lip
// animation on the rendered character; the video backend has no separate
// audio channel, so both travel inside the visual prompt.
type Voiceover struct {
	Enabled        bool   `json:"enabled"`
	Language       string `json:"language"`
	Script         string `json:"script"`
	Tone           string `json:"tone"`
	DisableLipSync bool   `json:"disable_lip_sync"`
}

type AudioDesign struct {
	Music      Music             `json:"music"`
	AmbientSFX map[string]string `json:"ambient_sfx"`
	Voiceover  Voiceover         `json:"voiceover"`
}

type LanguagePreferences struct {
	NarrationLanguage string `json:"narration_language"`
	SubtitleLanguage  string `json:"subtitle_language"`
	Tone              string `json:"tone"`
}

type Style struct {
	CinematicStyle string `json:"cinematic_style"`
	ColorGrade     string `json:"color_grade"`
	Quality        string `json:"quality"`
}

type TechnicalPrefs struct {
	FrameRate     string `json:"frame_rate"`
	Resolution    string `json:"resolution"`
	Stabilization string `json:"stabilization"`
}
