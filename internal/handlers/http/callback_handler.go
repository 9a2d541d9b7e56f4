// internal/handlers/http/callback_handler.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"well-dashboard/internal/callback"
)

// NewCallbackHandler POST /api/callback {callback, inputs} -> {success, outputs, error}.
func NewCallbackHandler(reg *callback.Registry, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req callback.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, callback.Response{Error: "invalid json body"})
			return
		}

		outs, err := reg.Dispatch(r.Context(), req.Callback, req.Inputs)
		switch {
		case errors.Is(err, callback.ErrUnknownCallback):
			writeJSON(w, http.StatusNotFound, callback.Response{Error: err.Error()})
			return
		case errors.Is(err, callback.ErrMissingInput):
			writeJSON(w, http.StatusBadRequest, callback.Response{Error: err.Error()})
			return
		case err != nil:
			logger.Error("callback failed", zap.String("callback", req.Callback), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, callback.Response{Error: "callback failed"})
			return
		}
		writeJSON(w, http.StatusOK, callback.Response{Success: true, Outputs: outs})
	}
}
