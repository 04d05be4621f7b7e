package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mission-ingestion-service/internal/domain/entity"
)

var (
	errEmptyBody    = errors.New("request body is empty")
	errTrailingData = errors.New("unexpected data after JSON payload")
)

type violationDetail struct {
	Loc     []string             `json:"loc"`
	Field   string               `json:"field"`
	Kind    entity.ViolationKind `json:"kind"`
	Message string               `json:"message"`
}

type validationErrorResponse struct {
	Detail []violationDetail `json:"detail"`
}

// decodeJSONBody reads a single JSON value from the body, keeping numbers as json.Number.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (interface{}, error) {
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, errTrailingData
	}

	return value, nil
}

// writeJSON serializes v as JSON with the provided status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeViolations(w http.ResponseWriter, violations entity.ValidationErrors) {
	resp := validationErrorResponse{Detail: make([]violationDetail, 0, len(violations))}
	for _, v := range violations {
		resp.Detail = append(resp.Detail, violationDetail{
			Loc:     []string{"body", v.Field},
			Field:   v.Field,
			Kind:    v.Kind,
			Message: v.Message,
		})
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
}
