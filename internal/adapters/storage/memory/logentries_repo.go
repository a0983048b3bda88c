package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"child-wellbeing-log/internal/domain/logentries"
)

type entryRepo struct {
	store *Store
}

func (r *entryRepo) Create(ctx context.Context, e logentries.LogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if e.ID == "" {
		return errors.New("log entry requires id")
	}
	if _, exists := r.store.entries[e.ID]; exists {
		return errors.New("log entry already exists: " + e.ID)
	}
	r.store.entries[e.ID] = e
	return nil
}

func (r *entryRepo) ListByChild(ctx context.Context, childID string, f logentries.ListFilter) ([]logentries.LogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]logentries.LogEntry, 0)
	for _, e := range r.store.entries {
		if e.ChildID != childID {
			continue
		}
		if e.IsSensitive && !f.IncludeSensitive {
			continue
		}
		if f.StartDate != nil && e.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.Date.After(*f.EndDate) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.LoggedBy != "" && e.LoggedBy != f.LoggedBy {
			continue
		}
		out = append(out, e)
	}

	// Mismo orden que el ORDER BY date DESC, time_logged DESC de Postgres.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].TimeLogged.Equal(out[j].TimeLogged) {
			return out[i].TimeLogged.After(out[j].TimeLogged)
		}
		return out[i].ID < out[j].ID
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out, nil
}

func (r *entryRepo) StatsByChild(ctx context.Context, childID string, f logentries.StatsFilter) ([]logentries.CategoryStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -f.Days)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	type acc struct {
		count       int
		moodSum     int
		moodN       int
		energySum   int
		energyN     int
		anxietySum  int
		anxietyN    int
		schoolDays  int
		hoursSum    float64
		hoursN      int
	}
	byCat := make(map[logentries.Category]*acc)

	for _, e := range r.store.entries {
		if e.ChildID != childID {
			continue
		}
		if e.IsSensitive && !f.IncludeSensitive {
			continue
		}
		if e.Date.Before(cutoff) {
			continue
		}

		a := byCat[e.Category]
		if a == nil {
			a = &acc{}
			byCat[e.Category] = a
		}
		a.count++
		if e.MoodLevel != nil {
			a.moodSum += *e.MoodLevel
			a.moodN++
		}
		if e.EnergyLevel != nil {
			a.energySum += *e.EnergyLevel
			a.energyN++
		}
		if e.AnxietyLevel != nil {
			a.anxietySum += *e.AnxietyLevel
			a.anxietyN++
		}
		if e.SchoolAttendance != nil && *e.SchoolAttendance {
			a.schoolDays++
		}
		if e.SchoolHours != nil {
			a.hoursSum += *e.SchoolHours
			a.hoursN++
		}
	}

	avg := func(sum, n int) *float64 {
		if n == 0 {
			return nil
		}
		v := float64(sum) / float64(n)
		return &v
	}

	out := make([]logentries.CategoryStats, 0, len(byCat))
	for cat, a := range byCat {
		st := logentries.CategoryStats{
			Category:   cat,
			Count:      a.count,
			AvgMood:    avg(a.moodSum, a.moodN),
			AvgEnergy:  avg(a.energySum, a.energyN),
			AvgAnxiety: avg(a.anxietySum, a.anxietyN),
			SchoolDays: a.schoolDays,
		}
		if a.hoursN > 0 {
			v := a.hoursSum / float64(a.hoursN)
			st.AvgSchoolHours = &v
		}
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})

	return out, nil
}
