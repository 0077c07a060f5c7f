package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/vitalworks/vitality/internal/auth"
	"github.com/vitalworks/vitality/internal/store"
)

const (
	// Below this fraction of answered questions the first recommendation
	// is always to answer more of them.
	answeredRatioFloor = 0.5
	maxRecommendations = 3
)

const answerMoreText = "One of the best ways to increase your Vitality Index " +
	"score and make it more accurate is to answer more questions"

type recommendation struct {
	Component string `json:"component"`
	Text      string `json:"text"`
}

// Recommendations picks the worst-scoring subcomponents of the caller's
// latest result within the named component and returns the advice text for
// each, up to three, prefixed with a prompt to answer more questions when
// the component is mostly unanswered.
func (h *ResultsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	latest, err := h.store.ListResults(r.Context(), claims.UserID, 1)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(latest) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no results yet"})
		return
	}

	result, err := h.store.GetResult(r.Context(), latest[0].ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	name := chi.URLParam(r, "component")
	var component *store.ResultComponent
	for _, c := range result.Components {
		if c.Name == name {
			component = c
			break
		}
	}
	if component == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown component " + name})
		return
	}

	catalog, err := h.store.Recommendations(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	recommendations := []recommendation{}
	if component.MaxPoints > 0 &&
		float64(component.MaxForAnswered)/float64(component.MaxPoints) < answeredRatioFloor {
		recommendations = append(recommendations, recommendation{
			Component: component.Name,
			Text:      answerMoreText,
		})
	}

	// Rank answered subcomponents by their earned fraction, worst first.
	var subs []*store.ResultSubComponent
	for _, sub := range component.SubComponents {
		if sub.MaxForAnswered > 0 {
			subs = append(subs, sub)
		}
	}
	sort.SliceStable(subs, func(i, j int) bool {
		ri := float64(subs[i].Points) / float64(subs[i].MaxForAnswered)
		rj := float64(subs[j].Points) / float64(subs[j].MaxForAnswered)
		if ri != rj {
			return ri < rj
		}
		return subs[i].Name < subs[j].Name
	})

	count := 0
	for _, sub := range subs {
		if count >= maxRecommendations {
			break
		}
		text := catalog[sub.Name]
		if text == "" {
			continue
		}
		recommendations = append(recommendations, recommendation{
			Component: component.Name,
			Text:      text,
		})
		count++
	}

	writeJSON(w, http.StatusOK, map[string][]recommendation{"recommendations": recommendations})
}
