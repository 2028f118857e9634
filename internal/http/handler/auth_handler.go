package handler

import (
	"net/http"

	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/domain"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the caller as seen by the API, including whether they have staff access
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	respondJSON(w, http.StatusOK, domain.AuthUserDTO{
		ID:      user.UserID.String(),
		Name:    user.DisplayName,
		Email:   user.Email,
		Roles:   roles,
		IsStaff: user.IsStaff(),
	})
}
