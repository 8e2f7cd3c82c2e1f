package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-tracker/internal/app/dragdrop"
	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
)

// parseStatus extracts a bucket status path parameter. Unknown statuses name
// no bucket and map to domain.ErrNotFound.
func parseStatus(r *http.Request, param string) (project.Status, error) {
	raw := chi.URLParam(r, param)
	status, err := project.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("bucket %q: %w", raw, domain.ErrNotFound)
	}
	return status, nil
}

// newTransfer builds the drag payload described by a request. Advertised
// types come first in request order, then data types in sorted order.
func newTransfer(req *dto.DragEventRequest) *dragdrop.DataTransfer {
	dt := dragdrop.NewDataTransfer()
	for _, mime := range req.Types {
		dt.Advertise(mime)
	}

	mimes := make([]string, 0, len(req.Data))
	for mime := range req.Data {
		mimes = append(mimes, mime)
	}
	slices.Sort(mimes)
	for _, mime := range mimes {
		dt.SetData(mime, req.Data[mime])
	}
	return dt
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, false)
}

// decodeOptionalJSONBody is decodeJSONBody for endpoints whose body may be
// empty. An empty body leaves dst untouched.
func decodeOptionalJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	dto.WriteErrorResponse(w, r, &domain.ValidationError{
		Fields: map[string]string{"body": "invalid JSON"},
	})
	return false
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
