package server

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/framegate/framegate/internal/errors"
	"github.com/framegate/framegate/internal/logger"
	"github.com/framegate/framegate/internal/store"
)

// anchorRequest is the body for PUT /api/v1/anchors/{name}.
type anchorRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
}

// anchorListResponse wraps the anchor collection.
type anchorListResponse struct {
	Anchors []store.Anchor `json:"anchors"`
	Count   int            `json:"count"`
}

// handlePutAnchor handles PUT /api/v1/anchors/{name}
func (s *Server) handlePutAnchor(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req anchorRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	anchor := store.Anchor{
		Name:     name,
		Timecode: req.Timecode,
		Rate:     req.Rate,
	}

	if err := s.anchors.Set(r.Context(), anchor); err != nil {
		s.writeError(w, r, s.anchorError(name, err))
		return
	}

	logger.FromContext(r.Context()).WithField("anchor", name).Info("Anchor stored")

	s.writeJSON(w, http.StatusOK, anchor)
}

// handleGetAnchor handles GET /api/v1/anchors/{name}
func (s *Server) handleGetAnchor(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	anchor, err := s.anchors.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, s.anchorError(name, err))
		return
	}

	s.writeJSON(w, http.StatusOK, anchor)
}

// handleDeleteAnchor handles DELETE /api/v1/anchors/{name}
func (s *Server) handleDeleteAnchor(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := s.anchors.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, s.anchorError(name, err))
		return
	}

	logger.FromContext(r.Context()).WithField("anchor", name).Info("Anchor deleted")

	w.WriteHeader(http.StatusNoContent)
}

// handleListAnchors handles GET /api/v1/anchors
func (s *Server) handleListAnchors(w http.ResponseWriter, r *http.Request) {
	anchors, err := s.anchors.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.NewServiceDownError("anchor store"))
		return
	}

	if anchors == nil {
		anchors = []store.Anchor{}
	}

	s.writeJSON(w, http.StatusOK, anchorListResponse{
		Anchors: anchors,
		Count:   len(anchors),
	})
}

// anchorError maps store errors onto API errors
func (s *Server) anchorError(name string, err error) error {
	if stderrors.Is(err, store.ErrAnchorNotFound) {
		return errors.NewNotFoundError(fmt.Sprintf("anchor %q", name))
	}
	if appErr, ok := errors.GetAppError(err); ok {
		return appErr
	}
	// Timecode validation failures stay 400s; anything else is the store
	// itself failing, surfaced as 503.
	if tcErr := errors.FromTimecodeError(err); tcErr.Type == errors.ErrorTypeValidation {
		return tcErr
	}
	return errors.NewServiceDownError("anchor store")
}
