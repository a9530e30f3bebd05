package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"framecraft/internal/composer"
	"framecraft/internal/httpkit"
	"framecraft/internal/pkg/errors"
)

// PostRender handles POST /shotstack. The data of the response is the
// render provider's answer, including the job id.
func (h *Handler) PostRender(w http.ResponseWriter, r *http.Request) error {
	var sub composer.Submission
	if err := httpkit.DecodeJSON(r, &sub); err != nil {
		return errors.WrapWithCode(err, errors.CodeBadRequest, "handlers.post_render", "invalid json body")
	}

	out, err := h.composer.Submit(r.Context(), sub)
	if err != nil {
		return err
	}

	httpkit.WriteSuccess(w, http.StatusOK, out)
	return nil
}

// GetRender handles GET /shotstack/{id}.
func (h *Handler) GetRender(w http.ResponseWriter, r *http.Request) error {
	out, err := h.composer.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	httpkit.WriteSuccess(w, http.StatusOK, out)
	return nil
}
