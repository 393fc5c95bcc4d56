package httpapi

import (
	"net/http"
)

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}

	list, err := h.categories.List(r.Context(), g)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newCategoryResponses(list))
}

func (h *Handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.categories.Get(r.Context(), g, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newCategoryResponse(c))
}

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.categories.Create(r.Context(), g, req.Title, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newCategoryResponse(c))
}

func (h *Handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.categories.Update(r.Context(), g, id, req.Title, req.Description); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w)
}

func (h *Handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	g, ok := h.guard(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), g, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w)
}
