package api

import (
	"encoding/json"
	"net/http"

	"github.com/vitalworks/vitality/internal/auth"
	"github.com/vitalworks/vitality/internal/store"
	"github.com/vitalworks/vitality/internal/vicalc"
)

type AnswersHandler struct {
	store store.Store
	calc  *vicalc.Calculator
}

func NewAnswersHandler(s store.Store, calc *vicalc.Calculator) *AnswersHandler {
	return &AnswersHandler{store: s, calc: calc}
}

type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

// Submit stores a batch of answers for the calling user, replacing any
// previous answers to the same questions. Unknown question names are
// rejected so typos surface at submit time instead of silently scoring as
// unanswered.
func (h *AnswersHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no answers submitted"})
		return
	}

	known := make(map[string]bool)
	for _, q := range h.calc.Inputs() {
		known[q] = true
	}

	var answers []*store.Answer
	for question, answer := range req.Answers {
		if !known[question] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown question " + question})
			return
		}
		answers = append(answers, &store.Answer{Question: question, Answer: answer})
	}

	claims := auth.ClaimsFromContext(r.Context())
	if err := h.store.UpsertAnswers(r.Context(), claims.UserID, answers); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"stored": len(answers)})
}

// Questions lists the questionnaire catalog the engine scores.
func (h *AnswersHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"questions": h.calc.Inputs()})
}
