package middleware

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-tracker/internal/platform/logging"
)

// Timeout returns middleware that answers 504 with a problem body when the
// handler has not finished after d. The handler's context carries the
// deadline: a handler still waiting to enter the event loop gives up when it
// expires, while an event already running on the loop completes and its
// response is dropped.
//
// The handler runs on its own goroutine and writes into a buffer. Whichever
// of completion or expiry is observed first decides what the client sees.
// A handler panic is re-raised on the serving goroutine so Recovery answers
// it; a panic after the 504 was sent is logged with the request logger.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			buf := &bufferedResponse{header: make(http.Header)}
			done := make(chan *handlerPanic, 1)
			go func() {
				defer func() {
					if v := recover(); v != nil {
						done <- &handlerPanic{value: v, stack: debug.Stack()}
					}
					close(done)
				}()
				next.ServeHTTP(buf, r.WithContext(ctx))
			}()

			select {
			case p := <-done:
				if p != nil {
					buf.abandon()
					panic(p)
				}
				buf.copyTo(w)
			case <-ctx.Done():
				buf.abandon()
				dto.WriteProblem(w, r, http.StatusGatewayTimeout, "request timed out")
				go logLatePanic(r, done)
			}
		})
	}
}

// handlerPanic carries a panic off the handler goroutine together with the
// stack where it happened.
type handlerPanic struct {
	value any
	stack []byte
}

func (p *handlerPanic) String() string { return fmt.Sprint(p.value) }

func logLatePanic(r *http.Request, done <-chan *handlerPanic) {
	if p := <-done; p != nil {
		logPanic(logging.FromContext(r.Context()), r, p)
	}
}

// bufferedResponse collects a handler's response until Timeout decides to
// send or drop it. Writes after abandon are discarded.
type bufferedResponse struct {
	mu        sync.Mutex
	header    http.Header
	body      []byte
	status    int
	abandoned bool
}

func (b *bufferedResponse) Header() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if !b.abandoned {
		b.body = append(b.body, p...)
	}
	return len(p), nil
}

func (b *bufferedResponse) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abandoned = true
	b.body = nil
}

func (b *bufferedResponse) copyTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}
