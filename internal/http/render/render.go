// Package render writes JSON bodies in the shape the ledger API uses,
// including {"detail": ...} error payloads.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Detail any `json:"detail"`
}

func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorResponse{Detail: detail})
}

// Issue is one entry of a 422 validation response.
type Issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func FieldIssue(field, msg string) Issue {
	return Issue{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}
}

func ValidationError(w http.ResponseWriter, issues ...Issue) {
	JSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: issues})
}
