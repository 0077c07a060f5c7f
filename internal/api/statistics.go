package api

import (
	"net/http"
	"strconv"

	"github.com/vitalworks/vitality/internal/store"
)

type StatisticsHandler struct {
	store store.Store
}

func NewStatisticsHandler(s store.Store) *StatisticsHandler {
	return &StatisticsHandler{store: s}
}

// Get aggregates the latest result of every user matching the optional
// gender / min_age / max_age query filters.
func (h *StatisticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	filter := store.StatisticsFilter{
		Gender: r.URL.Query().Get("gender"),
	}
	if v := r.URL.Query().Get("min_age"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid min_age"})
			return
		}
		filter.MinAge = &n
	}
	if v := r.URL.Query().Get("max_age"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_age"})
			return
		}
		filter.MaxAge = &n
	}
	if filter.MinAge != nil && filter.MaxAge != nil && *filter.MinAge > *filter.MaxAge {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "min_age exceeds max_age"})
		return
	}

	stats, err := h.store.Statistics(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if stats.Components == nil {
		stats.Components = []*store.ComponentStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}
