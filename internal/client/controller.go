package client

import (
	"context"
	"strings"

	"github.com/PabloPavan/userdir_api/internal/users"
)

type FormState struct {
	Name  string
	Email string
	Role  string
}

// Controller mirrors the admin form/list frontend: a read-through copy of
// the user list plus the form being edited. The list is never patched in
// place; every mutation triggers a full refresh. State is owned by a single
// event loop, so there is no locking.
type Controller struct {
	API *Client

	Users         []users.User
	Form          FormState
	EditingUserID string
	Status        string
	Loading       bool
}

func NewController(api *Client) *Controller {
	return &Controller{API: api, Form: FormState{Role: users.DefaultRole}}
}

// Refresh replaces the cached list with the server's. On failure the list
// is left untouched and a generic status is set.
func (c *Controller) Refresh(ctx context.Context) {
	c.Loading = true
	c.Status = ""

	list, err := c.API.List(ctx)
	c.Loading = false
	if err != nil {
		c.Status = "Unable to load users. Check the API connection."
		return
	}
	c.Users = list
}

// Submit creates a new user, or updates the one being edited. The presence
// check mirrors the server side so obviously invalid input never leaves the
// client. On success the form resets and the list refreshes; on failure the
// form is kept so the operator can retry.
func (c *Controller) Submit(ctx context.Context) {
	c.Status = ""

	payload := UserPayload{
		Name:  strings.TrimSpace(c.Form.Name),
		Email: strings.TrimSpace(c.Form.Email),
		Role:  strings.TrimSpace(c.Form.Role),
	}
	if payload.Role == "" {
		payload.Role = users.DefaultRole
	}

	if payload.Name == "" || payload.Email == "" {
		c.Status = "Name and email are required."
		return
	}

	editing := c.EditingUserID != ""

	var err error
	if editing {
		_, err = c.API.Update(ctx, c.EditingUserID, payload)
	} else {
		_, err = c.API.Create(ctx, payload)
	}
	if err != nil {
		c.Status = "Something went wrong while saving the user."
		return
	}

	c.Refresh(ctx)
	c.ResetForm()
	if editing {
		c.Status = "User updated."
	} else {
		c.Status = "User created."
	}
}

// BeginEdit copies u into the form. No server-side lock is taken; two
// operators editing the same user resolve as last write wins.
func (c *Controller) BeginEdit(u users.User) {
	c.EditingUserID = u.ID
	c.Form = FormState{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Remove deletes id and refreshes the list whatever the outcome.
func (c *Controller) Remove(ctx context.Context, id string) {
	c.Status = ""

	err := c.API.Delete(ctx, id)
	c.Refresh(ctx)
	if err != nil {
		c.Status = "Unable to delete user."
		return
	}
	c.Status = "User removed."
}

func (c *Controller) ResetForm() {
	c.Form = FormState{Role: users.DefaultRole}
	c.EditingUserID = ""
}
