package server

import (
	"encoding/json"
	"net/http"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
)

type errorBody struct {
	Code  mzerrors.Code `json:"code"`
	Error string        `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeArtifact(w http.ResponseWriter, status int, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError maps err to a status through its code. Uncoded errors are
// reported as internal without exposing their text.
func writeError(w http.ResponseWriter, err error) {
	code := mzerrors.GetCode(err)
	msg := mzerrors.UserMessage(err)
	if code == "" {
		code = mzerrors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, mzerrors.HTTPStatus(code), errorBody{Code: code, Error: msg})
}
