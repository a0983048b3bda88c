package access

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

	// Gestión de permisos (el granter es siempre el principal autenticado)
	r.Post("/users/permissions", grantPermissionsHandler(svc, validate))
	r.Post("/users/promote", promoteHandler(svc, validate))

	// Resolución de permisos para la UI
	r.Get("/users/{userID}/permissions/{childID}", resolvePermissionsHandler(svc))

	// Grants explícitos de un child (solo admins del child / super_admin)
	r.Get("/children/{childID}/grants", listChildGrantsHandler(svc))
}

// permissionsPayload es el triple de flags tal como viaja por la API.
type permissionsPayload struct {
	CanRead          bool `json:"canRead"`
	CanWrite         bool `json:"canWrite"`
	CanReadSensitive bool `json:"canReadSensitive"`
}

type grantPermissionsRequest struct {
	UserID      string             `json:"userId" validate:"required"`
	ChildID     string             `json:"childId" validate:"required"`
	Permissions permissionsPayload `json:"permissions"`
}

type promoteRequest struct {
	UserID  string `json:"userId" validate:"required"`
	ChildID string `json:"childId" validate:"required"`
}

// statusResponse es la respuesta {success, error?} que espera el panel.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type grantResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ChildID          string    `json:"child_id"`
	CanRead          bool      `json:"can_read"`
	CanWrite         bool      `json:"can_write"`
	CanReadSensitive bool      `json:"can_read_sensitive"`
	GrantedBy        string    `json:"granted_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// grantPermissionsHandler godoc
// @Summary Otorgar permisos sobre un child
// @Description Inserta o reemplaza por completo el grant de (userId, childId). El granter es el principal autenticado y debe ser super_admin o admin de ese child. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags access
// @Accept json
// @Produce json
// @Param payload body grantPermissionsRequest true "Target, child y flags pedidos; los flags ausentes quedan en false"
// @Success 200 {object} statusResponse
// @Failure 400 {object} statusResponse "json inválido / campos faltantes"
// @Failure 401 {object} statusResponse "unauthorized"
// @Failure 403 {object} statusResponse "Insufficient permissions to grant access"
// @Router /users/permissions [post]
func grantPermissionsHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeStatus(w, http.StatusUnauthorized, statusResponse{Success: false, Error: "unauthorized"})
			return
		}

		var req grantPermissionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, statusResponse{Success: false, Error: "invalid json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeStatus(w, http.StatusBadRequest, statusResponse{Success: false, Error: "userId and childId are required"})
			return
		}

		err := svc.Grant(r.Context(), claims.UserID, req.UserID, req.ChildID, Permissions{
			CanRead:          req.Permissions.CanRead,
			CanWrite:         req.Permissions.CanWrite,
			CanReadSensitive: req.Permissions.CanReadSensitive,
		})
		if err != nil {
			writeStatus(w, statusCode(err), statusResponse{Success: false, Error: grantErrorMessage(err)})
			return
		}

		writeStatus(w, http.StatusOK, statusResponse{Success: true, Message: "Permissions granted"})
	}
}

// promoteHandler godoc
// @Summary Promover un usuario a admin de un child
// @Description Asigna rol admin + scope del child al target y le otorga acceso total. El granter es el principal autenticado y debe ser super_admin o admin de ese child. Si el target ya administraba otro child, queda reasignado.
// @Tags access
// @Accept json
// @Produce json
// @Param payload body promoteRequest true "Target y child"
// @Success 200 {object} statusResponse
// @Failure 400 {object} statusResponse
// @Failure 401 {object} statusResponse
// @Failure 403 {object} statusResponse "Insufficient permissions to promote user"
// @Failure 404 {object} statusResponse "target inexistente (solo para granters autorizados)"
// @Router /users/promote [post]
func promoteHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeStatus(w, http.StatusUnauthorized, statusResponse{Success: false, Error: "unauthorized"})
			return
		}

		var req promoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, statusResponse{Success: false, Error: "invalid json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeStatus(w, http.StatusBadRequest, statusResponse{Success: false, Error: "userId and childId are required"})
			return
		}

		if err := svc.Promote(r.Context(), claims.UserID, req.UserID, req.ChildID); err != nil {
			writeStatus(w, statusCode(err), statusResponse{Success: false, Error: promoteErrorMessage(err)})
			return
		}

		writeStatus(w, http.StatusOK, statusResponse{Success: true, Message: "User promoted to admin"})
	}
}

// resolvePermissionsHandler godoc
// @Summary Resolver permisos efectivos
// @Description Devuelve el triple {canRead, canWrite, canReadSensitive} de un usuario sobre un child. El caller solo puede consultar sus propios permisos, salvo que tenga autoridad de administración sobre el child.
// @Tags access
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param childID path string true "ID del child"
// @Success 200 {object} permissionsPayload
// @Failure 401 {object} statusResponse
// @Failure 403 {object} statusResponse
// @Failure 404 {object} statusResponse "usuario inexistente"
// @Router /users/{userID}/permissions/{childID} [get]
func resolvePermissionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeStatus(w, http.StatusUnauthorized, statusResponse{Success: false, Error: "unauthorized"})
			return
		}

		userID := chi.URLParam(r, "userID")
		childID := chi.URLParam(r, "childID")

		// Consultar permisos ajenos requiere autoridad sobre el child.
		if userID != claims.UserID {
			if _, err := svc.ListByChild(r.Context(), claims.UserID, childID); err != nil {
				writeStatus(w, http.StatusForbidden, statusResponse{Success: false, Error: "insufficient permissions"})
				return
			}
		}

		perms, err := svc.Resolve(r.Context(), userID, childID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeStatus(w, http.StatusNotFound, statusResponse{Success: false, Error: "user not found"})
				return
			}
			writeStatus(w, statusCode(err), statusResponse{Success: false, Error: "internal error"})
			return
		}

		writeStatus(w, http.StatusOK, permissionsPayload{
			CanRead:          perms.CanRead,
			CanWrite:         perms.CanWrite,
			CanReadSensitive: perms.CanReadSensitive,
		})
	}
}

// listChildGrantsHandler godoc
// @Summary Listar grants explícitos de un child
// @Tags access
// @Produce json
// @Param childID path string true "ID del child"
// @Success 200 {array} grantResponse
// @Failure 401 {object} statusResponse
// @Failure 403 {object} statusResponse
// @Router /children/{childID}/grants [get]
func listChildGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeStatus(w, http.StatusUnauthorized, statusResponse{Success: false, Error: "unauthorized"})
			return
		}

		childID := chi.URLParam(r, "childID")
		items, err := svc.ListByChild(r.Context(), claims.UserID, childID)
		if err != nil {
			writeStatus(w, statusCode(err), statusResponse{Success: false, Error: "insufficient permissions"})
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, grantResponse{
				ID:               g.ID,
				UserID:           g.UserID,
				ChildID:          g.ChildID,
				CanRead:          g.CanRead,
				CanWrite:         g.CanWrite,
				CanReadSensitive: g.CanReadSensitive,
				GrantedBy:        g.GrantedBy,
				CreatedAt:        g.CreatedAt,
				UpdatedAt:        g.UpdatedAt,
			})
		}
		writeStatus(w, http.StatusOK, out)
	}
}

// Mensajes fijos del panel: distinguen "sin permiso" de "faltan campos",
// pero no revelan si el target existe cuando el caller no tiene autoridad.
func grantErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "Insufficient permissions to grant access"
	case errors.Is(err, ErrInvalidInput):
		return "Missing required fields"
	case errors.Is(err, ErrNotConfigured):
		return "Service unavailable"
	default:
		return "Could not grant permissions"
	}
}

func promoteErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "Insufficient permissions to promote user"
	case errors.Is(err, ErrInvalidInput):
		return "Missing required fields"
	case errors.Is(err, ErrNotFound):
		return "User not found"
	case errors.Is(err, ErrNotConfigured):
		return "Service unavailable"
	default:
		return "Could not promote user"
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
