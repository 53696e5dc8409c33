package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PabloPavan/userdir_api/internal/users"
)

// fakeAPI is a minimal in-memory stand-in for the userdir server, enough to
// drive the controller through its states.
type fakeAPI struct {
	users   []users.User
	nextID  int
	failAll bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(f.users)
		case http.MethodPost:
			var p UserPayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Email) == "" {
				http.Error(w, "name and email are required", http.StatusBadRequest)
				return
			}
			f.nextID++
			u := users.User{
				ID:        "usr_" + strings.Repeat("0", f.nextID),
				Name:      p.Name,
				Email:     strings.ToLower(p.Email),
				Role:      p.Role,
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			}
			f.users = append([]users.User{u}, f.users...)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(u)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/users/")
		idx := -1
		for i, u := range f.users {
			if u.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(f.users[idx])
		case http.MethodPut:
			var p UserPayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			f.users[idx].Name = p.Name
			f.users[idx].Email = strings.ToLower(p.Email)
			f.users[idx].Role = p.Role
			f.users[idx].UpdatedAt = time.Now().UTC()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(f.users[idx])
		case http.MethodDelete:
			f.users = append(f.users[:idx], f.users[idx+1:]...)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func newTestController(t *testing.T) (*Controller, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	return NewController(&Client{BaseURL: srv.URL}), api
}

func TestControllerSubmitCreatesAndRefreshes(t *testing.T) {
	ctl, _ := newTestController(t)
	ctx := context.Background()

	ctl.Form = FormState{Name: " Jane Doe ", Email: " JANE@x.com "}
	ctl.Submit(ctx)

	if ctl.Status != "User created." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if len(ctl.Users) != 1 {
		t.Fatalf("expected refreshed list of 1, got %d", len(ctl.Users))
	}
	if ctl.Users[0].Email != "jane@x.com" {
		t.Fatalf("unexpected email: %s", ctl.Users[0].Email)
	}
	if ctl.Form.Name != "" || ctl.Form.Email != "" || ctl.EditingUserID != "" {
		t.Fatalf("form not reset: %+v editing=%q", ctl.Form, ctl.EditingUserID)
	}
	if ctl.Form.Role != users.DefaultRole {
		t.Fatalf("reset form should default role, got %q", ctl.Form.Role)
	}
}

func TestControllerSubmitLocalValidation(t *testing.T) {
	ctl, api := newTestController(t)
	ctx := context.Background()

	ctl.Form = FormState{Name: "   ", Email: "jane@x.com"}
	ctl.Submit(ctx)

	if ctl.Status != "Name and email are required." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if len(api.users) != 0 {
		t.Fatal("invalid input must not reach the server")
	}
	if ctl.Form.Email != "jane@x.com" {
		t.Fatal("form must be preserved on failure")
	}
}

func TestControllerSubmitFailureKeepsForm(t *testing.T) {
	ctl, api := newTestController(t)
	ctx := context.Background()

	api.failAll = true
	ctl.Form = FormState{Name: "Jane", Email: "jane@x.com"}
	ctl.Submit(ctx)

	if ctl.Status != "Something went wrong while saving the user." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if ctl.Form.Name != "Jane" {
		t.Fatal("form must be preserved on failure")
	}
}

func TestControllerBeginEditAndUpdate(t *testing.T) {
	ctl, _ := newTestController(t)
	ctx := context.Background()

	ctl.Form = FormState{Name: "Jane", Email: "jane@x.com"}
	ctl.Submit(ctx)
	target := ctl.Users[0]

	ctl.BeginEdit(target)
	if ctl.EditingUserID != target.ID || ctl.Form.Email != "jane@x.com" {
		t.Fatalf("unexpected edit state: %+v editing=%q", ctl.Form, ctl.EditingUserID)
	}

	ctl.Form.Name = "Jane D."
	ctl.Form.Role = "admin"
	ctl.Submit(ctx)

	if ctl.Status != "User updated." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if ctl.EditingUserID != "" {
		t.Fatal("edit target not cleared")
	}
	if ctl.Users[0].Name != "Jane D." || ctl.Users[0].Role != "admin" {
		t.Fatalf("unexpected refreshed user: %+v", ctl.Users[0])
	}
}

func TestControllerRemoveRefreshesRegardless(t *testing.T) {
	ctl, api := newTestController(t)
	ctx := context.Background()

	ctl.Form = FormState{Name: "Jane", Email: "jane@x.com"}
	ctl.Submit(ctx)
	id := ctl.Users[0].ID

	ctl.Remove(ctx, id)
	if ctl.Status != "User removed." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if len(ctl.Users) != 0 {
		t.Fatalf("expected empty list, got %d", len(ctl.Users))
	}

	// Second delete of the same id fails but still refreshes.
	api.users = append(api.users, users.User{ID: "usr_other", Name: "O", Email: "o@x.com"})
	ctl.Remove(ctx, id)
	if ctl.Status != "Unable to delete user." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if len(ctl.Users) != 1 {
		t.Fatalf("list should have refreshed, got %d entries", len(ctl.Users))
	}
}

func TestControllerRefreshFailureKeepsList(t *testing.T) {
	ctl, api := newTestController(t)
	ctx := context.Background()

	ctl.Form = FormState{Name: "Jane", Email: "jane@x.com"}
	ctl.Submit(ctx)

	api.failAll = true
	ctl.Refresh(ctx)

	if ctl.Status != "Unable to load users. Check the API connection." {
		t.Fatalf("unexpected status: %q", ctl.Status)
	}
	if len(ctl.Users) != 1 {
		t.Fatal("list must be left unchanged on refresh failure")
	}
	if ctl.Loading {
		t.Fatal("loading flag must clear after refresh settles")
	}
}
