package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"child-wellbeing-log/internal/router"
)

func TestHTTP_EndToEnd_RolesAndPermissions(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Signup: un parent y un teacher
	parentID := signup(t, ts.URL, map[string]any{
		"name":  "Mor Hansen",
		"email": "mor@example.com",
		"role":  "parent",
	})
	teacherID := signup(t, ts.URL, map[string]any{
		"name":  "Lærer Jensen",
		"email": "laerer@example.com",
		"role":  "teacher",
	})

	// 2) Parent registra un child y queda como admin
	childID := createChild(t, ts.URL, parentID, map[string]any{
		"name":       "Emma",
		"birth_date": "2017-05-03",
	})

	// 3) El creador resuelve acceso total sobre su child
	{
		st, body := doReq(t, ts.URL, "GET", "/users/"+parentID+"/permissions/"+childID, parentID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 resolving own permissions, got %d body=%s", st, string(body))
		}
		perms := decodePerms(t, body)
		if !perms.CanRead || !perms.CanWrite || !perms.CanReadSensitive {
			t.Fatalf("expected full access for creator, got %+v", perms)
		}
	}

	// 4) El teacher todavía no puede ver nada
	{
		st, _ := doReq(t, ts.URL, "GET", "/children/"+childID+"/log-entries", teacherID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 before any grant, got %d", st)
		}
	}

	// 5) El teacher tampoco puede otorgar permisos
	{
		st, body := doReq(t, ts.URL, "POST", "/users/permissions", teacherID, map[string]any{
			"userId":  teacherID,
			"childId": childID,
			"permissions": map[string]any{
				"canRead": true, "canWrite": true, "canReadSensitive": true,
			},
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 grant by teacher, got %d body=%s", st, string(body))
		}
		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Success || resp.Error != "Insufficient permissions to grant access" {
			t.Fatalf("unexpected error body: %s", string(body))
		}
	}

	// 6) El admin le da lectura al teacher
	{
		st, body := doReq(t, ts.URL, "POST", "/users/permissions", parentID, map[string]any{
			"userId":  teacherID,
			"childId": childID,
			"permissions": map[string]any{
				"canRead": true,
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 grant read, got %d body=%s", st, string(body))
		}
	}

	// 7) El admin crea una entrada normal y una sensible
	createEntry(t, ts.URL, parentID, childID, map[string]any{
		"date":       "2026-01-14",
		"category":   "school",
		"title":      "God dag i skolen",
		"mood_level": 4,
	})
	createEntry(t, ts.URL, parentID, childID, map[string]any{
		"date":         "2026-01-14",
		"category":     "therapy",
		"title":        "Terapisession",
		"is_sensitive": true,
	})

	// 8) El teacher lee sin ver la entrada sensible
	{
		st, body := doReq(t, ts.URL, "GET", "/children/"+childID+"/log-entries", teacherID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by teacher, got %d body=%s", st, string(body))
		}
		entries := decodeEntries(t, body)
		if len(entries) != 1 {
			t.Fatalf("expected 1 visible entry for teacher, got %d", len(entries))
		}
		if entries[0].Category == "therapy" {
			t.Fatalf("sensitive entry leaked to teacher")
		}
	}

	// 9) El admin sí ve las dos
	{
		st, body := doReq(t, ts.URL, "GET", "/children/"+childID+"/log-entries", parentID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by admin, got %d body=%s", st, string(body))
		}
		entries := decodeEntries(t, body)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries for admin, got %d", len(entries))
		}
	}

	// 10) Solo lectura: el teacher no puede escribir
	{
		st, _ := doReq(t, ts.URL, "POST", "/children/"+childID+"/log-entries", teacherID, map[string]any{
			"date":     "2026-01-14",
			"category": "school",
			"title":    "Should fail",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 write by read-only teacher, got %d", st)
		}
	}

	// 11) El admin promueve al teacher
	{
		st, body := doReq(t, ts.URL, "POST", "/users/promote", parentID, map[string]any{
			"userId":  teacherID,
			"childId": childID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 promote, got %d body=%s", st, string(body))
		}
	}

	// 12) Promovido: escribe y ve entradas sensibles
	createEntry(t, ts.URL, teacherID, childID, map[string]any{
		"date":     "2026-01-15",
		"category": "meeting",
		"title":    "Skole-hjem samtale",
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/children/"+childID+"/log-entries", teacherID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list after promote, got %d body=%s", st, string(body))
		}
		entries := decodeEntries(t, body)
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries after promote, got %d", len(entries))
		}
	}

	// 13) Stats accesibles para el nuevo admin
	{
		st, body := doReq(t, ts.URL, "GET", "/children/"+childID+"/log-entries/stats?days=30", teacherID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
	}

	// 14) El listado de grants del child es solo para admins
	{
		st, _ := doReq(t, ts.URL, "GET", "/children/"+childID+"/grants", parentID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 grants list for admin, got %d", st)
		}
	}
}

func TestHTTP_Signup_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// rol admin no se obtiene por signup
	st, _ := doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"name":  "X",
		"email": "x@example.com",
		"role":  "admin",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for admin role, got %d", st)
	}

	// email duplicado => 409
	_ = signup(t, ts.URL, map[string]any{
		"name": "Mor", "email": "dup@example.com", "role": "parent",
	})
	st, _ = doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"name": "Far", "email": "dup@example.com", "role": "parent",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", st)
	}
}

func TestHTTP_RequiresPrincipal(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// sin principal => 401 en las rutas protegidas
	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/users"},
		{"GET", "/children"},
		{"POST", "/children"},
		{"POST", "/users/permissions"},
		{"POST", "/users/promote"},
		{"GET", "/children/child-1/log-entries"},
	}
	for _, p := range paths {
		st, _ := doReq(t, ts.URL, p.method, p.path, "", map[string]any{})
		if st != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, st)
		}
	}
}

func TestHTTP_CreateEntry_RejectsOutOfRangeRating(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	parentID := signup(t, ts.URL, map[string]any{
		"name": "Mor", "email": "mor2@example.com", "role": "parent",
	})
	childID := createChild(t, ts.URL, parentID, map[string]any{"name": "Emma"})

	// escala fuera de 1-5 => 400, nunca se recorta
	st, _ := doReq(t, ts.URL, "POST", "/children/"+childID+"/log-entries", parentID, map[string]any{
		"date":       "2026-01-14",
		"category":   "wellbeing",
		"title":      "X",
		"mood_level": 9,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range rating, got %d", st)
	}

	// categoría desconocida => 400
	st, _ = doReq(t, ts.URL, "POST", "/children/"+childID+"/log-entries", parentID, map[string]any{
		"date":     "2026-01-14",
		"category": "party",
		"title":    "X",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func signup(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/signup", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("signup: missing id body=%s", string(body))
	}
	return resp.ID
}

func createChild(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/children", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create child, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create child: missing id body=%s", string(body))
	}
	return resp.ID
}

func createEntry(t *testing.T, baseURL, userID, childID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/children/"+childID+"/log-entries", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create entry: missing id body=%s", string(body))
	}
	return resp.ID
}

type permsBody struct {
	CanRead          bool `json:"canRead"`
	CanWrite         bool `json:"canWrite"`
	CanReadSensitive bool `json:"canReadSensitive"`
}

func decodePerms(t *testing.T, body []byte) permsBody {
	t.Helper()
	var p permsBody
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode permissions: %v body=%s", err, string(body))
	}
	return p
}

type entryBody struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

func decodeEntries(t *testing.T, body []byte) []entryBody {
	t.Helper()
	var out []entryBody
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode entries: %v body=%s", err, string(body))
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
