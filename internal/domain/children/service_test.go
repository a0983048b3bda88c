package children

import (
	"context"
	"errors"
	"testing"
	"time"

	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/users"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	children map[string]Child
	grants   map[string]access.Grant
	users    *testUserRepo

	failRegister bool
}

func newTestRepo(u *testUserRepo) *testRepo {
	return &testRepo{
		children: map[string]Child{},
		grants:   map[string]access.Grant{},
		users:    u,
	}
}

// Register replica la unidad atómica del adapter real: o entran las tres
// escrituras o no entra ninguna.
func (r *testRepo) Register(ctx context.Context, c Child, g access.Grant) error {
	if r.failRegister {
		return errors.New("repo: tx failed")
	}
	u, ok := r.users.byID[c.CreatedBy]
	if !ok {
		return errRepoNotFound
	}
	u.Role = users.RoleAdmin
	u.ChildID = c.ID
	r.users.byID[u.ID] = u

	r.children[c.ID] = c
	r.grants[g.UserID+"/"+g.ChildID] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Child, error) {
	c, ok := r.children[id]
	if !ok {
		return Child{}, errRepoNotFound
	}
	return c, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]ChildWithCreator, error) {
	out := make([]ChildWithCreator, 0)
	for _, c := range r.children {
		if !c.IsActive {
			continue
		}
		out = append(out, ChildWithCreator{Child: c})
	}
	return out, nil
}

type testUserRepo struct {
	byID map[string]users.User
}

func newTestUserRepo(seed ...users.User) *testUserRepo {
	r := &testUserRepo{byID: map[string]users.User{}}
	for _, u := range seed {
		r.byID[u.ID] = u
	}
	return r
}

func (r *testUserRepo) Create(ctx context.Context, u users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testUserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return users.User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testUserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, errRepoNotFound
}

func (r *testUserRepo) SetRole(ctx context.Context, userID string, role users.Role, childID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return errRepoNotFound
	}
	u.Role = role
	u.ChildID = childID
	r.byID[userID] = u
	return nil
}

func (r *testUserRepo) ListWithChildName(ctx context.Context) ([]users.UserWithChild, error) {
	return nil, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_BootstrapsCreatorAsAdmin(t *testing.T) {
	userRepo := newTestUserRepo(users.User{
		ID: "parent-1", Name: "Mor", Email: "mor@example.com",
		Role: users.RoleParent, IsActive: true,
	})
	repo := newTestRepo(userRepo)
	svc := NewService(repo, userRepo)

	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Register(context.Background(), RegisterInput{
		Name:      "Emma",
		CreatorID: "parent-1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if c.ID == "" || c.Name != "Emma" || !c.IsActive {
		t.Fatalf("unexpected child: %#v", c)
	}
	if c.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}

	// el creador queda como admin de ese child
	u, _ := userRepo.GetByID(context.Background(), "parent-1")
	if u.Role != users.RoleAdmin || u.ChildID != c.ID {
		t.Fatalf("expected creator promoted to admin of %s, got role=%s child=%s", c.ID, u.Role, u.ChildID)
	}

	// y con grant completo, otorgado por sí mismo
	g, ok := repo.grants["parent-1/"+c.ID]
	if !ok {
		t.Fatalf("expected bootstrap grant stored")
	}
	if g.Permissions != access.FullAccess() {
		t.Fatalf("expected full access grant, got %#v", g.Permissions)
	}
	if g.GrantedBy != "parent-1" {
		t.Fatalf("expected self-granted, got %s", g.GrantedBy)
	}
}

func TestService_Register_UnknownCreator(t *testing.T) {
	userRepo := newTestUserRepo()
	svc := NewService(newTestRepo(userRepo), userRepo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Emma", CreatorID: "ghost"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Register_ValidatesInput(t *testing.T) {
	userRepo := newTestUserRepo()
	svc := NewService(newTestRepo(userRepo), userRepo)

	cases := []RegisterInput{
		{Name: "", CreatorID: "parent-1"},
		{Name: "   ", CreatorID: "parent-1"},
		{Name: "Emma", CreatorID: ""},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); err != ErrInvalidInput {
			t.Fatalf("input %#v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestService_Register_RepoFailure_NoChildVisible(t *testing.T) {
	userRepo := newTestUserRepo(users.User{
		ID: "parent-1", Role: users.RoleParent, IsActive: true,
	})
	repo := newTestRepo(userRepo)
	repo.failRegister = true
	svc := NewService(repo, userRepo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Emma", CreatorID: "parent-1"})
	if err == nil {
		t.Fatalf("expected error from repo")
	}
	if len(repo.children) != 0 || len(repo.grants) != 0 {
		t.Fatalf("expected no partial writes on failure")
	}
	u, _ := userRepo.GetByID(context.Background(), "parent-1")
	if u.Role != users.RoleParent {
		t.Fatalf("expected creator role untouched, got %s", u.Role)
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	userRepo := newTestUserRepo()
	svc := NewService(newTestRepo(userRepo), userRepo)

	if _, err := svc.GetByID(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
