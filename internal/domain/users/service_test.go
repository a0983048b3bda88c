package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]User

	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, errRepoNotFound
}

func (r *testRepo) SetRole(ctx context.Context, userID string, role Role, childID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return errRepoNotFound
	}
	u.Role = role
	u.ChildID = childID
	r.byID[userID] = u
	return nil
}

func (r *testRepo) ListWithChildName(ctx context.Context) ([]UserWithChild, error) {
	out := make([]UserWithChild, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, UserWithChild{User: u})
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestService_Signup_CreatesActiveUser(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Signup(context.Background(), SignupInput{
		Name:  "  Mor Hansen  ",
		Email: "Mor@Example.COM",
		Role:  RoleParent,
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.Name != "Mor Hansen" {
		t.Fatalf("expected trimmed name, got %q", u.Name)
	}
	if u.Email != "mor@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if !u.IsActive {
		t.Fatalf("expected active user")
	}
}

func TestService_Signup_RestrictedRoles(t *testing.T) {
	svc, _ := newTestService()

	// admin y super_admin no se obtienen por signup
	for _, role := range []Role{RoleAdmin, RoleSuperAdmin, Role("owner"), Role("")} {
		_, err := svc.Signup(context.Background(), SignupInput{
			Name:  "X",
			Email: "x@example.com",
			Role:  role,
		})
		if err != ErrInvalidInput {
			t.Fatalf("role %q: expected ErrInvalidInput, got %v", role, err)
		}
	}

	for _, role := range SignupRoles {
		_, err := svc.Signup(context.Background(), SignupInput{
			Name:  "X " + string(role),
			Email: string(role) + "@example.com",
			Role:  role,
		})
		if err != nil {
			t.Fatalf("role %q: unexpected error %v", role, err)
		}
	}
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	in := SignupInput{Name: "Mor", Email: "mor@example.com", Role: RoleParent}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("Signup #1: %v", err)
	}

	// misma dirección con otra capitalización
	in.Email = "MOR@example.com"
	if _, err := svc.Signup(context.Background(), in); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Signup_DuplicateEmail_RaceOnConstraint(t *testing.T) {
	// El pre-chequeo de GetByEmail puede perder una carrera; el store
	// devuelve ErrEmailTaken desde la violación del UNIQUE y el caller
	// lo recibe igual que en el camino normal.
	svc, repo := newTestService()
	repo.createErr = ErrEmailTaken

	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "Mor", Email: "race@example.com", Role: RoleParent,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken from constraint, got %v", err)
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetByID(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
