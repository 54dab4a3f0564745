package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"recipe-chef/api/internal/recipe"
)

type RecipeRequest struct {
	Ingredients string `json:"ingredients"`
}

// Recipe runs one recommendation for the session. Generation failures are
// part of the returned state, not an HTTP error.
func (h *Handle) Recipe(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	s := h.session(w, r)

	// The page may reload while the models work; the result still lands in the session.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.GenerateTimeout)
	defer cancel()

	err := h.recipes.Recommend(ctx, s.Locker(), s.Recipe(), req.Ingredients, s.Upload().Reset)
	switch {
	case errors.Is(err, recipe.ErrNoIngredients):
		writeError(w, http.StatusBadRequest, msgNoIngredients)
		return
	case errors.Is(err, recipe.ErrBusy):
		writeError(w, http.StatusConflict, msgBusy)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.stateResponse(s))
}
