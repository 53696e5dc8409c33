package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PabloPavan/userdir_api/internal/telemetry"
	"github.com/PabloPavan/userdir_api/internal/users"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

type UsersHandler struct {
	Service *users.Service
}

// List Users
// @Summary List users, newest first
// @Tags users
// @Produce json
// @Success 200 {array} users.User
// @Failure 500 {string} string
// @Router /users [get]
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Get User
// @Summary Get one user
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} users.User
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /users/{id} [get]
func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	u, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// Create User
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param body body UserPayloadDTO true "user"
// @Success 201 {object} users.User
// @Failure 400 {string} string
// @Failure 500 {string} string
// @Router /users [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto UserPayloadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := dto.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "users.create",
		attribute.String("user.email", dto.Email),
	)
	u, err := h.Service.Create(ctx, users.CreateUserRequest{
		Name:  dto.Name,
		Email: dto.Email,
		Role:  dto.Role,
	})
	span.End()
	if err != nil {
		writeAppError(w, err)
		return
	}

	telemetry.LogInfo(r.Context(), "user created",
		telemetry.LogString("event", "user.created"),
		telemetry.LogString("user.id", u.ID),
		telemetry.LogString("user.email", u.Email),
	)

	writeJSON(w, http.StatusCreated, u)
}

// Update User
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param body body UserPayloadDTO true "user"
// @Success 200 {object} users.User
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /users/{id} [put]
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var dto UserPayloadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := dto.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "users.update",
		attribute.String("user.id", id),
	)
	u, err := h.Service.Update(ctx, users.UpdateUserRequest{
		ID:    id,
		Name:  dto.Name,
		Email: dto.Email,
		Role:  dto.Role,
	})
	span.End()
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// Delete User
// @Summary Delete user
// @Tags users
// @Param id path string true "user id"
// @Success 204
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /users/{id} [delete]
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, span := telemetry.StartSpan(r.Context(), "users.delete",
		attribute.String("user.id", id),
	)
	err := h.Service.Delete(ctx, id)
	span.End()
	if err != nil {
		writeAppError(w, err)
		return
	}

	telemetry.LogInfo(r.Context(), "user deleted",
		telemetry.LogString("event", "user.deleted"),
		telemetry.LogString("user.id", id),
	)

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
