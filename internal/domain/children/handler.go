package children

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

	r.Route("/children", func(cr chi.Router) {
		cr.Post("/", registerChildHandler(svc, validate))
		cr.Get("/", listChildrenHandler(svc))
	})
}

type registerChildRequest struct {
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, opcional
}

type childResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedByName string     `json:"created_by_name,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

type apiError struct {
	Error string `json:"error"`
}

// registerChildHandler godoc
// @Summary Registrar un child
// @Description Crea el child y, en la misma unidad atómica, deja al principal autenticado como admin con acceso total. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags children
// @Accept json
// @Produce json
// @Param payload body registerChildRequest true "Nombre y fecha de nacimiento (YYYY-MM-DD, opcional)"
// @Success 201 {object} childResponse
// @Failure 400 {object} apiError "json inválido / birth_date inválido / nombre faltante"
// @Failure 401 {object} apiError
// @Failure 404 {object} apiError "creador inexistente"
// @Router /children [post]
func registerChildHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		var req registerChildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "name is required"})
			return
		}

		var birthDate *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, apiError{Error: "birth_date must be YYYY-MM-DD"})
				return
			}
			birthDate = &t
		}

		c, err := svc.Register(r.Context(), RegisterInput{
			Name:      req.Name,
			BirthDate: birthDate,
			CreatorID: claims.UserID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, apiError{Error: "creator not found"})
			case errors.Is(err, ErrNotConfigured):
				writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "service unavailable"})
			default:
				writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, toChildResponse(c, ""))
	}
}

// listChildrenHandler godoc
// @Summary Listar children activos
// @Description Devuelve los children activos con el nombre de su creador, del más reciente al más antiguo.
// @Tags children
// @Produce json
// @Success 200 {array} childResponse
// @Failure 401 {object} apiError
// @Failure 500 {object} apiError
// @Router /children [get]
func listChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "service unavailable"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
			return
		}

		out := make([]childResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toChildResponse(c.Child, c.CreatedByName))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toChildResponse(c Child, creatorName string) childResponse {
	return childResponse{
		ID:            c.ID,
		Name:          c.Name,
		BirthDate:     c.BirthDate,
		CreatedBy:     c.CreatedBy,
		CreatedByName: creatorName,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

// writeJSON se duplica a propósito en los handlers de cada módulo, igual que
// las structs de respuesta: todavía no amerita un paquete compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
