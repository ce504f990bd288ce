package api

import (
	"net/http"

	"shoplist-server/core"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// RenderError maps an operation error to its HTTP status. NotFound and
// InvalidInput are structured rejections with the operation's own message;
// anything else is an opaque 500.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsNotFound(err):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": err.Error()})
	case core.IsInvalidInput(err):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
	default:
		logrus.WithError(err).Error("Request failed")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "internal error"})
	}
}

// RenderUnauthorized is the rejection for requests whose claims are absent
// from the context.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": "User claims not found"})
}
