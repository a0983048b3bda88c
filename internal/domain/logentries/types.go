package logentries

// Category es el conjunto cerrado de categorías de una entrada de log.
// El store lo refuerza con un CHECK sobre la columna category.
type Category string

const (
	CategorySchool       Category = "school"
	CategoryWellbeing    Category = "wellbeing"
	CategoryBehavior     Category = "behavior"
	CategoryBreakthrough Category = "breakthrough"
	CategorySetback      Category = "setback"
	CategoryMeeting      Category = "meeting"
	CategoryTherapy      Category = "therapy"
	CategoryMedication   Category = "medication"
	CategoryOther        Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySchool, CategoryWellbeing, CategoryBehavior,
		CategoryBreakthrough, CategorySetback, CategoryMeeting,
		CategoryTherapy, CategoryMedication, CategoryOther:
		return true
	}
	return false
}

// ratingInRange valida un campo de escala 1-5 opcional. Fuera de rango se
// rechaza; nunca se recorta al rango.
func ratingInRange(v *int) bool {
	return v == nil || (*v >= 1 && *v <= 5)
}
