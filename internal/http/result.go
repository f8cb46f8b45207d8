package httpapi

import "net/http"

// errorBody is the failure envelope the frontend expects. The message is
// always a generic summary; causes stay in the logs.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func failJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Status: "error", Message: message})
}
