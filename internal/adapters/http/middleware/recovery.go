package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
)

// errInternalServer is what a client sees for a recovered panic. The panic
// value and stack stay in the logs.
var errInternalServer = errors.New("internal server error")

// Recovery returns middleware that turns a handler panic into an RFC 9457
// 500 response. A panic raised inside an event still releases the event
// loop, so later requests are served normally. When the handler has already
// written headers, the panic is only logged.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				logPanic(logger, r, v)
				if !rw.wroteHeader {
					dto.WriteErrorResponse(rw, r, errInternalServer)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// logPanic logs v with the stack of the goroutine that panicked. A panic
// forwarded by Timeout keeps the handler goroutine's stack.
func logPanic(logger *slog.Logger, r *http.Request, v any) {
	stack := debug.Stack()
	if p, ok := v.(*handlerPanic); ok {
		v, stack = p.value, p.stack
	}

	logger.ErrorContext(r.Context(), "panic recovered",
		slog.String("panic", fmt.Sprint(v)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", routePattern(r)),
		slog.String("stack", string(stack)),
	)
}
