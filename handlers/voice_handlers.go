package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

type voiceNoteReq struct {
	ProjectID       *uuid.UUID `json:"project_id,omitempty"`
	AudioPath       string     `json:"audio_path"`
	DurationSeconds int        `json:"duration_seconds"`
}

// CreateVoiceNote records the metadata row for an uploaded recording. The
// audio itself goes through the upload endpoint first; this stores the path
// it returned.
func CreateVoiceNote(w http.ResponseWriter, r *http.Request) {
	var req voiceNoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.AudioPath == "" {
		http.Error(w, "audio_path is required", http.StatusBadRequest)
		return
	}

	note := models.VoiceNote{
		UserID:          middleware.GetUserID(r),
		ProjectID:       req.ProjectID,
		AudioPath:       req.AudioPath,
		DurationSeconds: req.DurationSeconds,
		Status:          models.VoiceNoteRecorded,
	}
	if err := config.DB.Create(&note).Error; err != nil {
		http.Error(w, "failed to save voice note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(note)
}

// GetVoiceNotes lists the caller's recordings, newest first.
func GetVoiceNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var notes []models.VoiceNote
	err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&notes).Error
	if err != nil {
		http.Error(w, "failed to fetch voice notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"voice_notes": notes,
		"count":       len(notes),
	})
}

// GenerateFromVoiceNote marks a recording as consumed. There is no
// transcription pipeline behind this yet; it only flips the status so the
// client stops offering the note for generation.
func GenerateFromVoiceNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	noteID := vars["id"]
	userID := middleware.GetUserID(r)

	var note models.VoiceNote
	err := config.DB.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		http.Error(w, "voice note not found", http.StatusNotFound)
		return
	}

	stub, _ := json.Marshal(map[string]interface{}{
		"available": false,
		"message":   "Report generation is coming soon.",
	})
	updates := map[string]interface{}{
		"status": models.VoiceNoteGenerated,
		"draft":  datatypes.JSON(stub),
	}
	if err := config.DB.Model(&note).Updates(updates).Error; err != nil {
		http.Error(w, "failed to update voice note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"voice_note": note,
		"available":  false,
		"message":    "Report generation is coming soon.",
	})
}
