package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PabloPavan/userdir_api/internal/users"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore implements users.Store in memory, mimicking the postgres adapter:
// newest-first ordering, explicit timestamps, unique email violations as
// pgconn errors.
type memStore struct {
	list []*users.User
}

func (m *memStore) Create(ctx context.Context, u *users.User) error {
	for _, existing := range m.list {
		if existing.Email == u.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := *u
	m.list = append([]*users.User{&cp}, m.list...)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*users.User, error) {
	for _, u := range m.list {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *memStore) List(ctx context.Context) ([]*users.User, error) {
	out := make([]*users.User, 0, len(m.list))
	for _, u := range m.list {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, req *users.UpdateUserRequest) (*users.User, error) {
	for _, u := range m.list {
		if u.ID != req.ID {
			continue
		}
		for _, other := range m.list {
			if other.ID != req.ID && other.Email == req.Email {
				return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
			}
		}
		u.Name = req.Name
		u.Email = req.Email
		u.Role = req.Role
		u.UpdatedAt = time.Now().UTC()
		cp := *u
		return &cp, nil
	}
	return nil, users.ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	for i, u := range m.list {
		if u.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return users.ErrNotFound
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app := &App{
		Health: &HealthHandler{},
		Users:  &UsersHandler{Service: &users.Service{Store: &memStore{}}},
	}
	srv := httptest.NewServer(NewRouter(app))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return res
}

func decodeUser(t *testing.T, res *http.Response) users.User {
	t.Helper()
	defer res.Body.Close()

	var u users.User
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return u
}

func TestCreateUserNormalizesAndDefaults(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
		"name":  " Jane Doe ",
		"email": "JANE@x.com",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status: %d", res.StatusCode)
	}
	u := decodeUser(t, res)
	if u.ID == "" {
		t.Fatal("missing id")
	}
	if u.Name != "Jane Doe" || u.Email != "jane@x.com" || u.Role != "user" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", u)
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
		"name":  "   ",
		"email": "jane@x.com",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", res.StatusCode)
	}
}

func TestCreateUserDuplicateEmailIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": "Jane", "email": "jane@x.com"})
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("first create status: %d", res.StatusCode)
	}

	// Same address, different case: still one record.
	res = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": "Other", "email": "JANE@X.COM"})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate create status: %d", res.StatusCode)
	}

	listRes := doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	defer listRes.Body.Close()
	var list []users.User
	if err := json.NewDecoder(listRes.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(list))
	}
}

func TestListNewestFirst(t *testing.T) {
	srv := newTestServer(t)

	for _, email := range []string{"a@x.com", "b@x.com"} {
		res := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": "U", "email": email})
		res.Body.Close()
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("create status: %d", res.StatusCode)
		}
	}

	res := doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	defer res.Body.Close()
	var list []users.User
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if list[0].Email != "b@x.com" || list[1].Email != "a@x.com" {
		t.Fatalf("expected newest first, got %s then %s", list[0].Email, list[1].Email)
	}
}

func TestGetUpdateDeleteMissingUser(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodGet, srv.URL+"/api/users/usr_missing", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get status: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodPut, srv.URL+"/api/users/usr_missing", map[string]string{"name": "J", "email": "j@x.com"})
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("put status: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodDelete, srv.URL+"/api/users/usr_missing", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("delete status: %d", res.StatusCode)
	}
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{
		"name":  "Jane Doe",
		"email": "JANE@x.com",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %d", res.StatusCode)
	}
	created := decodeUser(t, res)
	if created.Email != "jane@x.com" || created.Role != "user" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	listRes := doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	var list []users.User
	if err := json.NewDecoder(listRes.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	listRes.Body.Close()
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	time.Sleep(5 * time.Millisecond)

	res = doJSON(t, http.MethodPut, srv.URL+"/api/users/"+created.ID, map[string]string{
		"name":  "Jane D.",
		"email": "jane@x.com",
		"role":  "admin",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d", res.StatusCode)
	}
	updated := decodeUser(t, res)
	if updated.Name != "Jane D." || updated.Role != "admin" {
		t.Fatalf("unexpected updated user: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt did not advance: %v vs %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}

	res = doJSON(t, http.MethodDelete, srv.URL+"/api/users/"+created.ID, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %d", res.StatusCode)
	}

	// Delete only succeeds once.
	res = doJSON(t, http.MethodDelete, srv.URL+"/api/users/"+created.ID, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status: %d", res.StatusCode)
	}

	res = doJSON(t, http.MethodGet, srv.URL+"/api/users/"+created.ID, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status: %d", res.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	res := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("unexpected status: %q", body.Status)
	}
}
