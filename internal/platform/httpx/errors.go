package httpx

import (
	"net/http"

	"github.com/jaakkopy/todo-backend/internal/shared"
)

func statusForKind(kind shared.Kind) int {
	switch kind {
	case shared.KindInvalidArgument:
		return http.StatusBadRequest
	case shared.KindUnauthenticated:
		return http.StatusUnauthorized
	case shared.KindForbidden:
		return http.StatusForbidden
	case shared.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps a domain error to an HTTP response. Classified errors
// carry their reason as a JSON body; anything else becomes a bare 500 so no
// internal detail leaks to the caller.
func RespondError(w http.ResponseWriter, err error) {
	if classified, ok := shared.Classified(err); ok {
		JSON(w, statusForKind(classified.Kind), Reason{Reason: classified.Reason})
		return
	}
	NoContent(w, http.StatusInternalServerError)
}
