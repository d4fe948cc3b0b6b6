package http

import (
	"log/slog"
	"net/http"

	"github.com/fwojciec/voicenav"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	voicenav.EINVALID:     http.StatusBadRequest,
	voicenav.EFILEKIND:    http.StatusBadRequest,
	voicenav.EMALFORMED:   http.StatusBadRequest,
	voicenav.ENOSELECTION: http.StatusBadRequest,
	voicenav.EUNSAFENAME:  http.StatusBadRequest,
	voicenav.ENOTFOUND:    http.StatusNotFound,
	voicenav.ECONFLICT:    http.StatusConflict,
	voicenav.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a plain-text response. Internal errors are logged and
// hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := voicenav.ErrorCode(err), voicenav.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if code == voicenav.EINTERNAL {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	http.Error(w, message, status)
}
