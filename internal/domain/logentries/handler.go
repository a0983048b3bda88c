package logentries

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"child-wellbeing-log/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	validate := validator.New()

	r.Route("/children/{childID}/log-entries", func(lr chi.Router) {
		lr.Post("/", createLogEntryHandler(svc, validate))
		lr.Get("/", listLogEntriesHandler(svc))
		lr.Get("/stats", statsHandler(svc))
	})
}

type createLogEntryRequest struct {
	Date     string `json:"date" validate:"required"` // YYYY-MM-DD
	Category string `json:"category" validate:"required,oneof=school wellbeing behavior breakthrough setback meeting therapy medication other"`
	Title    string `json:"title" validate:"required"`

	MoodLevel                *int `json:"mood_level" validate:"omitempty,min=1,max=5"`
	EnergyLevel              *int `json:"energy_level" validate:"omitempty,min=1,max=5"`
	AnxietyLevel             *int `json:"anxiety_level" validate:"omitempty,min=1,max=5"`
	MotivationLevel          *int `json:"motivation_level" validate:"omitempty,min=1,max=5"`
	SocialInteractionQuality *int `json:"social_interaction_quality" validate:"omitempty,min=1,max=5"`
	FocusAbility             *int `json:"focus_ability" validate:"omitempty,min=1,max=5"`
	EffectivenessRating      *int `json:"effectiveness_rating" validate:"omitempty,min=1,max=5"`

	SchoolAttendance *bool    `json:"school_attendance"`
	SchoolHours      *float64 `json:"school_hours" validate:"omitempty,gte=0,lte=24"`
	SchoolActivity   string   `json:"school_activity"`
	SchoolChallenges string   `json:"school_challenges"`
	SchoolSuccesses  string   `json:"school_successes"`

	Description       string   `json:"description"`
	Notes             string   `json:"notes"`
	Triggers          string   `json:"triggers"`
	InterventionsUsed string   `json:"interventions_used"`
	Tags              []string `json:"tags"`

	IsSensitive bool `json:"is_sensitive"`
}

type logEntryResponse struct {
	ID         string    `json:"id"`
	ChildID    string    `json:"child_id"`
	Date       string    `json:"date"`
	TimeLogged time.Time `json:"time_logged"`
	Category   Category  `json:"category"`
	Title      string    `json:"title"`

	MoodLevel                *int `json:"mood_level,omitempty"`
	EnergyLevel              *int `json:"energy_level,omitempty"`
	AnxietyLevel             *int `json:"anxiety_level,omitempty"`
	MotivationLevel          *int `json:"motivation_level,omitempty"`
	SocialInteractionQuality *int `json:"social_interaction_quality,omitempty"`
	FocusAbility             *int `json:"focus_ability,omitempty"`
	EffectivenessRating      *int `json:"effectiveness_rating,omitempty"`

	SchoolAttendance *bool    `json:"school_attendance,omitempty"`
	SchoolHours      *float64 `json:"school_hours,omitempty"`
	SchoolActivity   string   `json:"school_activity,omitempty"`
	SchoolChallenges string   `json:"school_challenges,omitempty"`
	SchoolSuccesses  string   `json:"school_successes,omitempty"`

	Description       string   `json:"description,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	Triggers          string   `json:"triggers,omitempty"`
	InterventionsUsed string   `json:"interventions_used,omitempty"`
	Tags              []string `json:"tags,omitempty"`

	LoggedBy    string    `json:"logged_by"`
	IsSensitive bool      `json:"is_sensitive"`
	CreatedAt   time.Time `json:"created_at"`
}

type categoryStatsResponse struct {
	Category       Category `json:"category"`
	Count          int      `json:"count"`
	AvgMood        *float64 `json:"avg_mood,omitempty"`
	AvgEnergy      *float64 `json:"avg_energy,omitempty"`
	AvgAnxiety     *float64 `json:"avg_anxiety,omitempty"`
	SchoolDays     int      `json:"school_days"`
	AvgSchoolHours *float64 `json:"avg_school_hours,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

// createLogEntryHandler godoc
// @Summary Crear una entrada de log
// @Description Registra una observación diaria para el child. Requiere can_write del principal sobre ese child. Título, categoría y fecha son obligatorios; las escalas deben estar en 1-5 (fuera de rango se rechaza, no se recorta). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags log-entries
// @Accept json
// @Produce json
// @Param childID path string true "ID del child"
// @Param payload body createLogEntryRequest true "Entrada; date en formato YYYY-MM-DD"
// @Success 201 {object} logEntryResponse
// @Failure 400 {object} apiError "json inválido / campos faltantes / escala fuera de 1-5"
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError "insufficient permission"
// @Router /children/{childID}/log-entries [post]
func createLogEntryHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		childID := chi.URLParam(r, "childID")

		var req createLogEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: validationMessage(err)})
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "date must be YYYY-MM-DD"})
			return
		}

		e, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			ChildID:  childID,
			Date:     date,
			Category: Category(req.Category),
			Title:    req.Title,

			MoodLevel:                req.MoodLevel,
			EnergyLevel:              req.EnergyLevel,
			AnxietyLevel:             req.AnxietyLevel,
			MotivationLevel:          req.MotivationLevel,
			SocialInteractionQuality: req.SocialInteractionQuality,
			FocusAbility:             req.FocusAbility,
			EffectivenessRating:      req.EffectivenessRating,

			SchoolAttendance: req.SchoolAttendance,
			SchoolHours:      req.SchoolHours,
			SchoolActivity:   req.SchoolActivity,
			SchoolChallenges: req.SchoolChallenges,
			SchoolSuccesses:  req.SchoolSuccesses,

			Description:       req.Description,
			Notes:             req.Notes,
			Triggers:          req.Triggers,
			InterventionsUsed: req.InterventionsUsed,
			Tags:              req.Tags,

			IsSensitive: req.IsSensitive,
		})
		if err != nil {
			writeEntryError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLogEntryResponse(e))
	}
}

// listLogEntriesHandler godoc
// @Summary Listar entradas de log de un child
// @Description Devuelve las entradas visibles para el principal, de la más reciente a la más antigua. Sin can_read_sensitive las entradas sensibles se excluyen por completo. Filtros: rango de fechas, categoría, autor y límite.
// @Tags log-entries
// @Produce json
// @Param childID path string true "ID del child"
// @Param startDate query string false "Fecha mínima (YYYY-MM-DD)"
// @Param endDate query string false "Fecha máxima (YYYY-MM-DD)"
// @Param category query string false "Categoría exacta"
// @Param logged_by query string false "ID del usuario que registró"
// @Param limit query int false "Máximo de entradas (1-200). Por defecto 50"
// @Success 200 {array} logEntryResponse
// @Failure 400 {object} apiError "filtros inválidos"
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Router /children/{childID}/log-entries [get]
func listLogEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		childID := chi.URLParam(r, "childID")

		filter, err := parseListFilter(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}

		items, err := svc.List(r.Context(), claims.UserID, childID, filter)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		out := make([]logEntryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toLogEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// statsHandler godoc
// @Summary Estadísticas por categoría
// @Description Agrega las entradas del child en los últimos N días (por defecto 30): cuenta, promedios de ánimo/energía/ansiedad, días de asistencia escolar y horas promedio. Misma autorización que el listado.
// @Tags log-entries
// @Produce json
// @Param childID path string true "ID del child"
// @Param days query int false "Ventana en días (1-365). Por defecto 30"
// @Success 200 {array} categoryStatsResponse
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Router /children/{childID}/log-entries/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
			return
		}

		childID := chi.URLParam(r, "childID")

		days := 30
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}

		stats, err := svc.Stats(r.Context(), claims.UserID, childID, days)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		out := make([]categoryStatsResponse, 0, len(stats))
		for _, st := range stats {
			out = append(out, categoryStatsResponse{
				Category:       st.Category,
				Count:          st.Count,
				AvgMood:        st.AvgMood,
				AvgEnergy:      st.AvgEnergy,
				AvgAnxiety:     st.AvgAnxiety,
				SchoolDays:     st.SchoolDays,
				AvgSchoolHours: st.AvgSchoolHours,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{Limit: 50}

	if v := strings.TrimSpace(r.URL.Query().Get("startDate")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return ListFilter{}, errors.New("startDate must be YYYY-MM-DD")
		}
		filter.StartDate = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("endDate")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return ListFilter{}, errors.New("endDate must be YYYY-MM-DD")
		}
		filter.EndDate = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		c := Category(v)
		if !c.Valid() {
			return ListFilter{}, errors.New("unknown category")
		}
		filter.Category = c
	}
	if v := strings.TrimSpace(r.URL.Query().Get("logged_by")); v != "" {
		filter.LoggedBy = v
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}

	return filter, nil
}

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, apiError{Error: "insufficient permission"})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid input"})
	case errors.Is(err, ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "service unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

// validationMessage arma un mensaje legible a partir del primer campo
// inválido; suficiente para que el form sepa qué corregir.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "oneof":
			return field + " must be one of: " + fe.Param()
		case "min", "max", "gte", "lte":
			return field + " is out of range"
		}
		return field + " is invalid"
	}
	return "invalid input"
}

func toLogEntryResponse(e LogEntry) logEntryResponse {
	return logEntryResponse{
		ID:         e.ID,
		ChildID:    e.ChildID,
		Date:       e.Date.Format("2006-01-02"),
		TimeLogged: e.TimeLogged,
		Category:   e.Category,
		Title:      e.Title,

		MoodLevel:                e.MoodLevel,
		EnergyLevel:              e.EnergyLevel,
		AnxietyLevel:             e.AnxietyLevel,
		MotivationLevel:          e.MotivationLevel,
		SocialInteractionQuality: e.SocialInteractionQuality,
		FocusAbility:             e.FocusAbility,
		EffectivenessRating:      e.EffectivenessRating,

		SchoolAttendance: e.SchoolAttendance,
		SchoolHours:      e.SchoolHours,
		SchoolActivity:   e.SchoolActivity,
		SchoolChallenges: e.SchoolChallenges,
		SchoolSuccesses:  e.SchoolSuccesses,

		Description:       e.Description,
		Notes:             e.Notes,
		Triggers:          e.Triggers,
		InterventionsUsed: e.InterventionsUsed,
		Tags:              e.Tags,

		LoggedBy:    e.LoggedBy,
		IsSensitive: e.IsSensitive,
		CreatedAt:   e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
