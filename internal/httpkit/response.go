package httpkit

import (
	"encoding/json"
	"io"
	"net/http"

	"framecraft/internal/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// maxBodyBytes bounds request bodies; submissions are three short strings.
const maxBodyBytes = 64 << 10

// Envelope is the body of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorData is the data block of an error envelope.
type ErrorData struct {
	Code     string              `json:"code"`
	Details  []errors.FieldError `json:"details,omitempty"`
	Provider string              `json:"provider,omitempty"`
	Status   int                 `json:"status,omitempty"`
	Response json.RawMessage     `json:"response,omitempty"`
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteSuccess writes {"status":"success","data":data}.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

// WriteError writes the error envelope for err with the status its code
// maps to. Validation details and remote provider context are echoed.
func WriteError(w http.ResponseWriter, err error) {
	data := ErrorData{Code: string(errors.GetCode(err))}

	var e *errors.Error
	if errors.As(err, &e) {
		data.Details = e.Details()
		if p, ok := e.Fields["provider"].(string); ok {
			data.Provider = p
		}
		if s, ok := e.Fields["status"].(int); ok {
			data.Status = s
		}
		if raw, ok := e.Fields["response"].(json.RawMessage); ok {
			data.Response = raw
		}
	}

	WriteJSON(w, errors.GetHTTPStatus(err), Envelope{
		Status:  StatusError,
		Message: errors.GetMessage(err),
		Data:    data,
	})
}
