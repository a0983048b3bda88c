// Package memory implementa los repositorios sobre mapas en memoria.
// Sirve para el modo dev sin Postgres y para los tests end-to-end.
package memory

import (
	"errors"
	"sync"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/children"
	"child-wellbeing-log/internal/domain/logentries"
	"child-wellbeing-log/internal/domain/users"
)

var ErrNotFound = errors.New("not found")

// Store agrupa todas las "tablas" bajo un único mutex. El mutex compartido
// es deliberado: el registro de un child escribe en users, children y grants
// como unidad, igual que la transacción del adapter de Postgres.
type Store struct {
	mu       sync.RWMutex
	users    map[string]users.User
	children map[string]children.Child
	grants   map[string]access.Grant // key: userID + "/" + childID
	entries  map[string]logentries.LogEntry
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]users.User),
		children: make(map[string]children.Child),
		grants:   make(map[string]access.Grant),
		entries:  make(map[string]logentries.LogEntry),
	}
}

func grantKey(userID, childID string) string {
	return userID + "/" + childID
}

func (s *Store) Users() users.Repository           { return &userRepo{store: s} }
func (s *Store) Children() children.Repository     { return &childRepo{store: s} }
func (s *Store) Grants() access.Repository         { return &grantRepo{store: s} }
func (s *Store) LogEntries() logentries.Repository { return &entryRepo{store: s} }
