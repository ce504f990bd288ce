package lists

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shoplist-server/core"
	"shoplist-server/handlers/api"
	"shoplist-server/middleware"
	"shoplist-server/recommend"
	"shoplist-server/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type createRequest struct {
	Name       string          `json:"name"`
	Visibility core.Visibility `json:"visibility,omitempty"`
	Phones     []string        `json:"phones,omitempty"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
}

// HandleCreate creates a list owned by the authenticated user, optionally
// inviting participants by phone number.
func HandleCreate(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		list, err := svc.CreateList(userID, req.Name, req.Visibility, req.Phones)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, list)
	}
}

// HandleIndex lists every list the authenticated user participates in.
func HandleIndex(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		out, err := svc.ListsForUser(userID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		if out == nil {
			out = []*core.EnrichedList{}
		}
		render.JSON(w, r, out)
	}
}

// HandleGet returns one enriched list. PRIVATE lists are visible to their
// participants only; LINK and PUBLIC lists to anyone holding the id.
func HandleGet(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		list, err := svc.GetList(chi.URLParam(r, "id"))
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		if list.Visibility == core.VisibilityPrivate && !list.HasParticipant(userID) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "list not found"})
			return
		}
		render.JSON(w, r, list)
	}
}

// HandleDelete removes a list with its full cascade. Only the owner may
// delete; that policy lives here, not in the entity operation.
func HandleDelete(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		listID := chi.URLParam(r, "id")
		list, err := svc.GetList(listID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		if list.OwnerID != userID {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, map[string]string{"error": "only the owner may delete a list"})
			return
		}

		if err := svc.DeleteList(listID); err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{"id": listID})
	}
}

// HandleJoin adds the authenticated user to the list's participants.
func HandleJoin(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		list, err := svc.JoinList(chi.URLParam(r, "id"), userID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.JSON(w, r, list)
	}
}

// HandleItems returns the list's enriched items, most recent first.
func HandleItems(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Items(chi.URLParam(r, "id"))
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		if items == nil {
			items = []*core.EnrichedItem{}
		}
		render.JSON(w, r, items)
	}
}

// HandleAddItem puts a catalog product on the list.
func HandleAddItem(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		item, err := svc.AddItem(chi.URLParam(r, "id"), userID, req.ProductID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, item)
	}
}

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
)

// HandleRecommendations returns candidate products for the list. A failing
// or empty recommender yields an empty list, never an error: recommendations
// must not break list viewing.
func HandleRecommendations(svc *service.Service, recommender recommend.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID := chi.URLParam(r, "id")
		items, err := svc.Items(listID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}

		limit := defaultRecommendationLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		if limit > maxRecommendationLimit {
			limit = maxRecommendationLimit
		}

		out := []*core.Product{}
		it, err := recommender.Recommend(r.Context(), items)
		if err != nil {
			logrus.WithField("list_id", listID).WithError(err).Warn("No recommendations available")
			render.JSON(w, r, out)
			return
		}
		for len(out) < limit {
			candidate, ok := it.Next()
			if !ok {
				break
			}
			out = append(out, candidate)
		}
		render.JSON(w, r, out)
	}
}
