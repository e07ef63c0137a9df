package services

import (
	"encoding/json"
	"net/http"

	"github.com/EO-DataHub/eodhp-users-dashboard/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}) {

	w.Header().Set("Content-Type", "application/json")

	// Dashboard state changes with every transition, never cache it
	w.Header().Set("Cache-Control", "max-age=0")

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes an unsuccessful models.Response carrying err.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	WriteResponse(w, statusCode, models.Response{
		Success:      0,
		ErrorDetails: err.Error(),
	})
}

// HandleSuccessResponse writes a successful models.Response carrying data.
func HandleSuccessResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteResponse(w, statusCode, models.Response{
		Success: 1,
		Data:    data,
	})
}
