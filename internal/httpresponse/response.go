package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ownErrors "littlego/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// WriteResponseWithStatus writes the {Status, Body} envelope and sets the same
// status on the HTTP response.
func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func WriteError(w http.ResponseWriter, status int, err error) {
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

// NewResponse builds the envelope for transports that encode it themselves.
func NewResponse(status int, body any) Response[any] {
	return Response[any]{
		Status: status,
		Body:   body,
	}
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	marshal, err := json.Marshal(NewResponse(status, body))
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

// WriteInternalErrorResponse works like http.Error but keeps the JSON content type.
func WriteInternalErrorResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

// StatusFromError maps domain errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ownErrors.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, ownErrors.ErrGameNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
