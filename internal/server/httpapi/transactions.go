package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/server/services"
)

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.transactions.List(r.Context(), g, categoryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, newTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getTransaction(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	categoryID, id, err := transactionPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.transactions.Get(r.Context(), g, categoryID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTransactionResponse(t))
}

func (h *Handlers) createTransaction(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	t, err := h.transactions.Create(r.Context(), g, categoryID, transactionInput(req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionResponse(t))
}

func (h *Handlers) updateTransaction(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	categoryID, id, err := transactionPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.transactions.Update(r.Context(), g, categoryID, id, transactionInput(req)); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w)
}

func (h *Handlers) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	categoryID, id, err := transactionPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.transactions.Delete(r.Context(), g, categoryID, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w)
}

func transactionPath(r *http.Request) (categoryID, id int64, err error) {
	if categoryID, err = pathID(r, "categoryId"); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "transactionId"); err != nil {
		return 0, 0, err
	}
	return categoryID, id, nil
}

func transactionInput(req transactionRequest) services.TransactionInput {
	return services.TransactionInput{
		Amount: req.Amount,
		Note:   req.Note,
		Date:   dateFromMillis(req.TransactionDate),
	}
}
