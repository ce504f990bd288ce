package users

import (
	"encoding/json"
	"net/http"

	"shoplist-server/handlers/api"
	"shoplist-server/middleware"
	"shoplist-server/service"

	"github.com/go-chi/render"
)

type updateRequest struct {
	Name string `json:"name"`
}

// HandleMe returns the authenticated user's record.
func HandleMe(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		user, err := svc.GetUser(userID)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.JSON(w, r, user)
	}
}

// HandleUpdateMe changes the authenticated user's display name.
func HandleUpdateMe(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r)
		if !ok {
			api.RenderUnauthorized(w, r)
			return
		}

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid request body"})
			return
		}

		user, err := svc.UpdateProfile(userID, req.Name)
		if err != nil {
			api.RenderError(w, r, err)
			return
		}
		render.JSON(w, r, user)
	}
}
