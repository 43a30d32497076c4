package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
)

// Recovery turns a handler panic into a 500 envelope and logs the stack with
// the request id. http.ErrAbortHandler is re-raised so net/http can drop the
// connection as it intends.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log.Printf("[Recovery] panic rid=%s %s %s: %v\n%s",
				w.Header().Get(RequestIDHeader), r.Method, r.URL.Path, rec, debug.Stack())
			writeError(w, apierror.InternalError("internal server error"))
		}()

		next.ServeHTTP(w, r)
	})
}
