package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"child-wellbeing-log/internal/domain/logentries"
)

type LogEntriesRepo struct {
	db *sql.DB
}

func NewLogEntriesRepo(db *sql.DB) *LogEntriesRepo {
	return &LogEntriesRepo{db: db}
}

const logEntryColumns = `
	id, child_id, date, time_logged,
	category, title,
	mood_level, energy_level, anxiety_level, motivation_level,
	social_interaction_quality, focus_ability, effectiveness_rating,
	school_attendance, school_hours, school_activity, school_challenges, school_successes,
	description, notes, triggers, interventions_used, tags,
	logged_by, is_sensitive, created_at
`

func (r *LogEntriesRepo) Create(ctx context.Context, e logentries.LogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO log_entries (`+logEntryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
	`,
		e.ID,
		e.ChildID,
		e.Date,
		e.TimeLogged,
		string(e.Category),
		e.Title,
		toNullInt(e.MoodLevel),
		toNullInt(e.EnergyLevel),
		toNullInt(e.AnxietyLevel),
		toNullInt(e.MotivationLevel),
		toNullInt(e.SocialInteractionQuality),
		toNullInt(e.FocusAbility),
		toNullInt(e.EffectivenessRating),
		toNullBool(e.SchoolAttendance),
		toNullFloat(e.SchoolHours),
		e.SchoolActivity,
		e.SchoolChallenges,
		e.SchoolSuccesses,
		e.Description,
		e.Notes,
		e.Triggers,
		e.InterventionsUsed,
		textArray(e.Tags),
		e.LoggedBy,
		e.IsSensitive,
		e.CreatedAt,
	)
	return err
}

func (r *LogEntriesRepo) ListByChild(ctx context.Context, childID string, f logentries.ListFilter) ([]logentries.LogEntry, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + logEntryColumns + ` FROM log_entries WHERE child_id = $1`)

	args := []any{childID}
	argN := 2

	if !f.IncludeSensitive {
		sb.WriteString(" AND NOT is_sensitive")
	}
	if f.StartDate != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *f.StartDate)
		argN++
	}
	if f.EndDate != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *f.EndDate)
		argN++
	}
	if f.Category != "" {
		sb.WriteString(fmt.Sprintf(" AND category = $%d", argN))
		args = append(args, string(f.Category))
		argN++
	}
	if f.LoggedBy != "" {
		sb.WriteString(fmt.Sprintf(" AND logged_by = $%d", argN))
		args = append(args, f.LoggedBy)
		argN++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY date DESC, time_logged DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logentries.LogEntry, 0)
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *LogEntriesRepo) StatsByChild(ctx context.Context, childID string, f logentries.StatsFilter) ([]logentries.CategoryStats, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			category,
			COUNT(*),
			AVG(mood_level),
			AVG(energy_level),
			AVG(anxiety_level),
			COUNT(*) FILTER (WHERE school_attendance),
			AVG(school_hours)
		FROM log_entries
		WHERE child_id = $1
		  AND date >= CURRENT_DATE - make_interval(days => $2)
	`)
	if !f.IncludeSensitive {
		sb.WriteString(" AND NOT is_sensitive")
	}
	sb.WriteString(" GROUP BY category ORDER BY COUNT(*) DESC, category ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), childID, f.Days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logentries.CategoryStats, 0)
	for rows.Next() {
		var st logentries.CategoryStats
		var cat string
		var avgMood, avgEnergy, avgAnxiety, avgHours sql.NullFloat64

		if err := rows.Scan(
			&cat,
			&st.Count,
			&avgMood,
			&avgEnergy,
			&avgAnxiety,
			&st.SchoolDays,
			&avgHours,
		); err != nil {
			return nil, err
		}

		st.Category = logentries.Category(cat)
		st.AvgMood = fromNullFloat(avgMood)
		st.AvgEnergy = fromNullFloat(avgEnergy)
		st.AvgAnxiety = fromNullFloat(avgAnxiety)
		st.AvgSchoolHours = fromNullFloat(avgHours)

		out = append(out, st)
	}

	return out, rows.Err()
}

func scanLogEntry(rows *sql.Rows) (logentries.LogEntry, error) {
	var e logentries.LogEntry
	var category string
	var mood, energy, anxiety, motivation, social, focus, effectiveness sql.NullInt64
	var attendance sql.NullBool
	var hours sql.NullFloat64
	var tags textArray

	if err := rows.Scan(
		&e.ID,
		&e.ChildID,
		&e.Date,
		&e.TimeLogged,
		&category,
		&e.Title,
		&mood,
		&energy,
		&anxiety,
		&motivation,
		&social,
		&focus,
		&effectiveness,
		&attendance,
		&hours,
		&e.SchoolActivity,
		&e.SchoolChallenges,
		&e.SchoolSuccesses,
		&e.Description,
		&e.Notes,
		&e.Triggers,
		&e.InterventionsUsed,
		&tags,
		&e.LoggedBy,
		&e.IsSensitive,
		&e.CreatedAt,
	); err != nil {
		return logentries.LogEntry{}, err
	}

	e.Category = logentries.Category(category)
	e.MoodLevel = fromNullInt(mood)
	e.EnergyLevel = fromNullInt(energy)
	e.AnxietyLevel = fromNullInt(anxiety)
	e.MotivationLevel = fromNullInt(motivation)
	e.SocialInteractionQuality = fromNullInt(social)
	e.FocusAbility = fromNullInt(focus)
	e.EffectivenessRating = fromNullInt(effectiveness)
	if attendance.Valid {
		v := attendance.Bool
		e.SchoolAttendance = &v
	}
	e.SchoolHours = fromNullFloat(hours)
	e.Tags = []string(tags)

	return e, nil
}

// helpers
func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func toNullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
