package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Voice note statuses. There is no real transcription pipeline; notes stay
// "recorded" until the placeholder generate endpoint marks them "generated".
const (
	VoiceNoteRecorded  = "recorded"
	VoiceNoteGenerated = "generated"
)

// VoiceNote is the stored audio of a site recording. Only the blob path and
// duration are kept; the audio itself lives on local disk or GCS.
type VoiceNote struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID       *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	AudioPath       string     `gorm:"size:500;not null" json:"audio_path"`
	DurationSeconds int        `json:"duration_seconds"`
	Status          string     `gorm:"size:30;not null;default:'recorded'" json:"status"`
	// Draft holds the report payload produced from this recording, once the
	// generation pipeline exists. The placeholder endpoint writes a stub.
	Draft     datatypes.JSON `gorm:"type:jsonb" json:"draft,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (VoiceNote) TableName() string {
	return "voice_notes"
}

func (v *VoiceNote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
