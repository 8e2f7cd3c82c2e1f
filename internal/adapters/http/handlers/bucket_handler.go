package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-tracker/internal/app/board"
	"github.com/jsamuelsen11/project-tracker/internal/app/dragdrop"
	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
)

// Drag event names accepted by a bucket's drop target.
const (
	eventDragOver  = "dragover"
	eventDragLeave = "dragleave"
	eventDrop      = "drop"
)

// BucketHandler handles HTTP requests for bucket views and the drag events
// delivered to their drop targets.
type BucketHandler struct {
	loop  *eventloop.Loop
	board *board.Board
}

// NewBucketHandler creates a new BucketHandler. The board is only read and
// driven from inside loop.
func NewBucketHandler(loop *eventloop.Loop, b *board.Board) *BucketHandler {
	return &BucketHandler{loop: loop, board: b}
}

// ListBuckets handles GET /api/v1/buckets.
func (h *BucketHandler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	resp, err := eventloop.Call(r.Context(), h.loop, func() (dto.BoardResponse, error) {
		return dto.ToBoardResponse(h.board), nil
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetBucket handles GET /api/v1/buckets/{status}.
func (h *BucketHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(r, "status")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	resp, err := eventloop.Call(r.Context(), h.loop, func() (dto.BucketResponse, error) {
		bucket, err := h.board.Bucket(status)
		if err != nil {
			return dto.BucketResponse{}, err
		}
		return dto.ToBucketResponse(bucket), nil
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// DragOver handles POST /api/v1/buckets/{status}/dragover.
func (h *BucketHandler) DragOver(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, eventDragOver)
}

// DragLeave handles POST /api/v1/buckets/{status}/dragleave. The body is
// optional.
func (h *BucketHandler) DragLeave(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, eventDragLeave)
}

// Drop handles POST /api/v1/buckets/{status}/drop.
func (h *BucketHandler) Drop(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, eventDrop)
}

// dispatch delivers one drag event to the bucket's drop target and reports
// the target's state after handling it.
func (h *BucketHandler) dispatch(w http.ResponseWriter, r *http.Request, event string) {
	status, err := parseStatus(r, "status")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.DragEventRequest
	if !decodeOptionalJSONBody(w, r, &req) {
		return
	}
	ev := dragdrop.NewEvent(newTransfer(&req))

	resp, err := eventloop.Call(r.Context(), h.loop, func() (dto.DragEventResponse, error) {
		bucket, err := h.board.Bucket(status)
		if err != nil {
			return dto.DragEventResponse{}, err
		}

		target := bucket.Target()
		target.Handlers()[event](ev)

		return dto.DragEventResponse{
			Event:            event,
			Bucket:           status.String(),
			DefaultPrevented: ev.DefaultPrevented(),
			State:            target.State().String(),
		}, nil
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
