package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitalworks/vitality/internal/auth"
	"github.com/vitalworks/vitality/internal/notify"
	"github.com/vitalworks/vitality/internal/store"
	"github.com/vitalworks/vitality/internal/vicalc"
)

type ResultsHandler struct {
	store  store.Store
	events notify.Publisher
	calc   *vicalc.Calculator
	logger *slog.Logger
}

func NewResultsHandler(s store.Store, events notify.Publisher, calc *vicalc.Calculator, logger *slog.Logger) *ResultsHandler {
	return &ResultsHandler{store: s, events: events, calc: calc, logger: logger}
}

// Create scores the caller's latest answers and persists the report.
// Profile birth date and gender fill in for unanswered questionnaire
// fields; explicit answers win.
func (h *ResultsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	user, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	stored, err := h.store.GetLatestAnswers(r.Context(), claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(stored) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no answers submitted yet"})
		return
	}

	answers := vicalc.AnswerSet{}
	answerIDs := make([]uuid.UUID, 0, len(stored))
	for _, a := range stored {
		answers[a.Question] = a.Answer
		answerIDs = append(answerIDs, a.ID)
	}
	if answers["BirthDate"] == "" && user.BirthDate != nil {
		answers["BirthDate"] = user.BirthDate.Format("2006-01-02")
	}
	if answers["Gender"] == "" && user.Gender != "" {
		answers["Gender"] = user.Gender
	}

	start := time.Now()
	report := h.calc.Score(answers)
	scoreDuration.Observe(time.Since(start).Seconds())
	scoresComputed.Inc()

	var previous *int
	if prior, err := h.store.ListResults(r.Context(), claims.UserID, 1); err == nil && len(prior) > 0 {
		previous = &prior[0].Points
	}

	result := flattenReport(report)
	result.UserID = claims.UserID
	if err := h.store.CreateResult(r.Context(), result, answerIDs); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	event := notify.ResultGeneratedEvent{
		ResultID:       result.ID.String(),
		UserID:         user.ID.String(),
		Email:          user.Email,
		FirstName:      user.FirstName,
		Points:         result.Points,
		MaxForAnswered: result.MaxForAnswered,
		PreviousPoints: previous,
		GeneratedAt:    result.GeneratedAt,
	}
	if err := h.events.Publish(notify.SubjectResultGenerated(result.ID.String()), event); err != nil {
		h.logger.Warn("failed to publish result event", "result_id", result.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, result)
}

// flattenReport turns the two levels below the score tree's root into
// component and subcomponent rows, ordered by name for stable output.
func flattenReport(report *vicalc.Report) *store.Result {
	result := &store.Result{
		Points:         report.Points,
		MaxPoints:      report.MaxPoints,
		MaxForAnswered: report.MaxForAnswered,
	}
	for name, section := range report.Components {
		c := &store.ResultComponent{
			Name:           name,
			Points:         section.Points,
			MaxPoints:      section.MaxPoints,
			MaxForAnswered: section.MaxForAnswered,
		}
		for leafName, leaf := range section.Components {
			c.SubComponents = append(c.SubComponents, &store.ResultSubComponent{
				Name:           leafName,
				Points:         leaf.Points,
				MaxPoints:      leaf.MaxPoints,
				MaxForAnswered: leaf.MaxForAnswered,
			})
		}
		sort.Slice(c.SubComponents, func(i, j int) bool {
			return c.SubComponents[i].Name < c.SubComponents[j].Name
		})
		result.Components = append(result.Components, c)
	}
	sort.Slice(result.Components, func(i, j int) bool {
		return result.Components[i].Name < result.Components[j].Name
	})
	return result
}

func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	results, err := h.store.ListResults(r.Context(), claims.UserID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if results == nil {
		results = []*store.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ownedResult(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ResultsHandler) Answers(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ownedResult(w, r)
	if !ok {
		return
	}
	answers, err := h.store.GetResultAnswers(r.Context(), result.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if answers == nil {
		answers = []*store.Answer{}
	}
	writeJSON(w, http.StatusOK, answers)
}

// ownedResult loads the routed result and enforces ownership: missing rows
// are a 404, another user's rows a 403.
func (h *ResultsHandler) ownedResult(w http.ResponseWriter, r *http.Request) (*store.Result, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid result id"})
		return nil, false
	}

	result, err := h.store.GetResult(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "result not found"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}

	claims := auth.ClaimsFromContext(r.Context())
	if result.UserID != claims.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return nil, false
	}
	return result, true
}
