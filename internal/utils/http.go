// Package utils provides small helpers shared by the API client, the tools
// and their tests: the resty client wrapper, request identifiers, photo file
// hashing and JSON response writing.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/openphoto-utils/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteResult writes result wrapped in the photo API response envelope. The
// envelope code mirrors statusCode.
//
// Example usage:
//
//	utils.WriteResult(w, http.StatusOK, "Photo list", photos)
func WriteResult[T any](w http.ResponseWriter, statusCode int, message string, result T) (int, error) {
	return WriteJSON(w, models.Response[T]{
		Code:    statusCode,
		Message: message,
		Result:  result,
	}, statusCode)
}
