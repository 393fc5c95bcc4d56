package httpapi

import "net/http"

func (h *Handlers) getBudget(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}

	b, err := h.budgets.Get(r.Context(), g)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newBudgetResponse(b))
}

func (h *Handlers) setBudget(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.budgets.Set(r.Context(), g, req.TotalBudget)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newBudgetResponse(b))
}
