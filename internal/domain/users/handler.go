package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"child-wellbeing-log/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	validate := validator.New()

	r.Post("/auth/signup", signupHandler(svc, validate))
	r.Get("/users", listUsersHandler(svc))
}

type signupRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=parent teacher"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ChildID   string    `json:"child_id,omitempty"`
	ChildName string    `json:"child_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type apiError struct {
	Error string `json:"error"`
}

// signupHandler godoc
// @Summary Registrar una cuenta
// @Description Crea un usuario con rol parent o teacher. Los roles admin y super_admin nunca se asignan por signup. La verificación de credenciales vive en el proveedor de identidad externo.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Nombre, email y rol (parent|teacher)"
// @Success 201 {object} userResponse
// @Failure 400 {object} apiError "campos faltantes / rol inválido"
// @Failure 409 {object} apiError "email ya registrado"
// @Router /auth/signup [post]
func signupHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "name, email and role (parent|teacher) are required"})
			return
		}

		u, err := svc.Signup(r.Context(), SignupInput{
			Name:  req.Name,
			Email: req.Email,
			Role:  Role(req.Role),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				writeJSON(w, http.StatusConflict, apiError{Error: "email already registered"})
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid input"})
			case errors.Is(err, ErrNotConfigured):
				writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "service unavailable"})
			default:
				writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u, ""))
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios con roles
// @Description Devuelve todos los usuarios con su rol y el nombre del child que administran (si aplica), del más reciente al más antiguo. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags users
// @Produce json
// @Success 200 {array} userResponse
// @Failure 401 {object} apiError
// @Failure 500 {object} apiError
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		items, err := svc.ListWithRoles(r.Context())
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "service unavailable"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u.User, u.ChildName))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toUserResponse(u User, childName string) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ChildID:   u.ChildID,
		ChildName: childName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
