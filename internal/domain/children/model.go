package children

import "time"

// Child es el perfil al que se asocian entradas de log y permisos.
type Child struct {
	ID        string
	Name      string
	BirthDate *time.Time

	// CreatedBy es el usuario que registró el child. Inmutable: ese usuario
	// queda como primer admin del child en el mismo registro.
	CreatedBy string

	IsActive  bool
	CreatedAt time.Time
}

// ChildWithCreator es un child junto al nombre de su creador
// (para el listado del panel).
type ChildWithCreator struct {
	Child
	CreatedByName string
}
