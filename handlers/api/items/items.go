package items

import (
	"encoding/json"
	"net/http"

	"shoplist-server/core"
	"shoplist-server/handlers/api"
	"shoplist-server/middleware"
	"shoplist-server/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type reactRequest struct {
	Kind core.ReactionKind `json:"kind"`
}

type suggestRequest struct {
	ProductID int64 `json:"productId"`
}

// HandleRemove removes an item with its reactions and suggestions.
func HandleRemove(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")
		if err := svc.RemoveItem(itemID); err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{"id": itemID})
	}
}

// HandleReact toggles the authenticated user's reaction on the item and
// returns the recomputed counts.
func HandleReact(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		var req reactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		counts, err := svc.ToggleReaction(chi.URLParam(r, "id"), userID, req.Kind)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.JSON(w, r, counts)
	}
}

// HandleSuggest appends an alternative-product suggestion to the item.
func HandleSuggest(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		var req suggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		suggestion, err := svc.AddSuggestion(chi.URLParam(r, "id"), userID, req.ProductID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, suggestion)
	}
}
