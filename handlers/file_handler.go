package handlers

import (
	"net/http"
	"os"
)

// UploadAudioHandler routes to the appropriate upload handler based on environment
func UploadAudioHandler(w http.ResponseWriter, r *http.Request) {
	// Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or K_SERVICE (Cloud Run)
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		UploadAudioGCS(w, r)
	} else {
		UploadAudioLocal(w, r)
	}
}
