package products

import (
	"net/http"
	"strconv"

	"shoplist-server/core"
	"shoplist-server/handlers/api"
	"shoplist-server/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HandleIndex returns the full catalog.
func HandleIndex(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, svc.Products())
	}
}

// HandleGet returns one product by its numeric id.
func HandleGet(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			api.RenderError(w, r, core.InvalidInputf("product id must be numeric"))
			return
		}

		product, err := svc.Product(id)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.JSON(w, r, product)
	}
}
