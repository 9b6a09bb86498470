package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/idelchi/gosplit/internal/logger"
	"github.com/idelchi/gosplit/internal/shard"
)

var (
	errBadRequest = errors.New("bad request")
	errTooLarge   = errors.New("input exceeds the configured size limit")
)

var errorStatusMap = map[error]int{
	errBadRequest: http.StatusBadRequest,
	errTooLarge:   http.StatusRequestEntityTooLarge,

	shard.ErrInsufficientData:  http.StatusBadRequest,
	shard.ErrMissingPart:       http.StatusBadRequest,
	shard.ErrMalformedManifest: http.StatusBadRequest,
	shard.ErrIntegrity:         http.StatusUnprocessableEntity,
	shard.ErrDecryption:        http.StatusUnprocessableEntity,
}

func statusFromError(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// writeError logs err and answers with its status and a JSON body.
// Internal errors are not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	message := err.Error()

	log := logger.FromRequest(r)

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")

		message = http.StatusText(status)
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(body) //nolint:errcheck,errchkjson // client gone
}
