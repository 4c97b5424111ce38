package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
	"github.com/autopeer-io/edfsizer/internal/sizer/render"
	"github.com/autopeer-io/edfsizer/internal/sizer/snapshot"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

const (
	TagOptimal  = "optimal"
	TagBaseline = "baseline"
)

// Point is one marker of the payload / fly time scatter.
type Point struct {
	Tag string `json:"tag"`
	model.CandidateSpec
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	store *snapshot.Store
}

func (h *handler) current(w http.ResponseWriter) (*model.Result, bool) {
	res, err := h.store.Current()
	if errors.Is(err, snapshot.ErrNotReady) {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return res, true
}

// query reads ?sort=a,-b and repeated ?filter=expr parameters.
func query(w http.ResponseWriter, r *http.Request) (*render.Query, bool) {
	params := r.URL.Query()
	keys := lo.FlatMap(params["sort"], func(v string, _ int) []string { return strings.Split(v, ",") })

	q, err := render.NewQuery(keys, params["filter"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return q, true
}

func (h *handler) handleCandidates(w http.ResponseWriter, r *http.Request) {
	q, ok := query(w, r)
	if !ok {
		return
	}
	res, ok := h.current(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, q.Apply(res.Candidates))
}

func (h *handler) handleFrontier(w http.ResponseWriter, r *http.Request) {
	q, ok := query(w, r)
	if !ok {
		return
	}
	res, ok := h.current(w)
	if !ok {
		return
	}

	frontier, baseline := q.Apply(res.Frontier), q.Apply(res.Baseline)
	points := make([]Point, 0, len(frontier)+len(baseline))
	for _, s := range frontier {
		points = append(points, Point{Tag: TagOptimal, CandidateSpec: s})
	}
	for _, s := range baseline {
		points = append(points, Point{Tag: TagBaseline, CandidateSpec: s})
	}
	respondJSON(w, http.StatusOK, points)
}

func (h *handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Status())
}

func (h *handler) handleReload(w http.ResponseWriter, r *http.Request) {
	log.Info("Reload requested", "remote", r.RemoteAddr)
	if err := h.store.Refresh(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.store.Status())
}

func (h *handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(err, "Failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}
