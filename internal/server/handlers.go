package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// stateResponse is the summary served on /api/state.
type stateResponse struct {
	Loading       bool                      `json:"loading"`
	FallbackMode  bool                      `json:"fallback_mode"`
	Error         string                    `json:"error,omitempty"`
	Counts        map[string]int            `json:"counts"`
	Versions      map[string]uint64         `json:"versions"`
	Workflows     map[string]workflow.State `json:"workflows"`
	Notifications []workflow.Notification   `json:"notifications"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.store().Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{
		Loading:      snap.Loading,
		FallbackMode: snap.FallbackMode,
		Error:        snap.Error,
		Counts:       snap.Counts,
		Versions:     snap.Versions,
		Workflows: map[string]workflow.State{
			string(workflow.Upload): s.runner.State(workflow.Upload),
			string(workflow.Match):  s.runner.State(workflow.Match),
			string(workflow.Offers): s.runner.State(workflow.Offers),
		},
		Notifications: s.notes.Recent(),
	})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store().Candidates())
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active_only") == "true" {
		writeJSON(w, http.StatusOK, s.store().ActiveRoles())
		return
	}
	writeJSON(w, http.StatusOK, s.store().Roles())
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := api.MatchFilter{
		CandidateID: q.Get("candidate_id"),
		RoleID:      q.Get("role_id"),
		Status:      q.Get("status"),
	}
	if raw := q.Get("min_score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid min_score"})
			return
		}
		filter.MinScore = &score
	}
	writeJSON(w, http.StatusOK, s.store().MatchesWhere(filter))
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := api.OfferFilter{
		CandidateID: q.Get("candidate_id"),
		RoleID:      q.Get("role_id"),
		Status:      q.Get("status"),
	}
	writeJSON(w, http.StatusOK, s.store().OffersWhere(filter))
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	offer, err := s.hub.Offers().Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	comments := r.URL.Query().Get("comments")
	offer, err := s.hub.Offers().Reject(r.Context(), r.PathValue("id"), comments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

type uploadRequest struct {
	Files []string `json:"files"`
}

// Workflow triggers run on the server's session context, not the request
// context: the delayed refresh must survive the 202 response.
func (s *Server) handleUploadWorkflow(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	receipt, err := s.runner.Upload(s.ctx, req.Files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"message": receipt.Message})
}

type matchRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
	RoleIDs      []string `json:"role_ids"`
}

func (s *Server) handleMatchWorkflow(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	receipt, err := s.runner.RunMatching(s.ctx, req.CandidateIDs, req.RoleIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"message": receipt.Message})
}

type offersRequest struct {
	MatchIDs []string `json:"match_ids"`
}

func (s *Server) handleOffersWorkflow(w http.ResponseWriter, r *http.Request) {
	var req offersRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	receipt, err := s.runner.GenerateOffers(s.ctx, req.MatchIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"message": receipt.Message})
}

// decodeBody parses an optional JSON body. Triggers accept an empty body
// as "use the defaults".
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps session errors onto the backend's JSON error shape.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if workflow.IsBusy(err) {
		status = http.StatusConflict
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		status = httpStatus(apiErr)
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func httpStatus(e *api.Error) int {
	if e.Status >= 400 {
		return e.Status
	}
	switch e.Kind {
	case api.KindBadRequest:
		return http.StatusBadRequest
	case api.KindUnauthorized:
		return http.StatusUnauthorized
	case api.KindForbidden:
		return http.StatusForbidden
	case api.KindNotFound:
		return http.StatusNotFound
	case api.KindNetworkTimeout:
		return http.StatusGatewayTimeout
	case api.KindNetworkUnreachable, api.KindServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
