package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"member-profile/database"
	"member-profile/models"
	"member-profile/views"

	"go.uber.org/zap"
)

// InvalidCredentialsMessage is shown on the login form after a failed attempt.
const InvalidCredentialsMessage = "請輸入正確的帳號密碼"

// ProfileHandler serves the profile pages.
type ProfileHandler struct {
	views views.Renderer
}

func NewProfileHandler(renderer views.Renderer) *ProfileHandler {
	return &ProfileHandler{views: renderer}
}

// Index handles GET / - shows the bound member's profile
func (h *ProfileHandler) Index(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
	if !scope.Session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}
	name, _ := scope.Session.Name()

	member, err := scope.Members.FindByName(scope.Ctx, name)
	if errors.Is(err, database.ErrMemberNotFound) {
		return h.demote(w, r, scope, name)
	}
	if err != nil {
		return err
	}

	return h.views.Render(w, http.StatusOK, views.Index, views.PageData{User: member})
}

// Login handles GET|POST /login
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
	if r.Method != http.MethodPost {
		return h.views.Render(w, http.StatusOK, views.Login, views.PageData{})
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse login form: %w", err)
	}
	req := models.LoginRequestFromForm(r.PostForm)

	member, err := scope.Members.FindByCredentials(scope.Ctx, req.IDNo, req.Pwd)
	if errors.Is(err, database.ErrMemberNotFound) {
		logRequest(scope.Ctx, "info", "Invalid credentials", zap.String("idno", req.IDNo))
		return h.views.Render(w, http.StatusOK, views.Login, views.PageData{Message: InvalidCredentialsMessage})
	}
	if err != nil {
		return err
	}

	scope.Session.SetIdentity(member.IID, member.Name)
	if err := scope.Session.Save(r, w); err != nil {
		return err
	}

	logRequest(scope.Ctx, "info", "Login successful", zap.Int64("iid", member.IID))
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// Edit handles GET|POST /edit
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
	if !scope.Session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}
	name, _ := scope.Session.Name()

	if r.Method != http.MethodPost {
		member, err := scope.Members.FindByName(scope.Ctx, name)
		if errors.Is(err, database.ErrMemberNotFound) {
			return h.demote(w, r, scope, name)
		}
		if err != nil {
			return err
		}
		return h.views.Render(w, http.StatusOK, views.Edit, views.PageData{User: member})
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse edit form: %w", err)
	}
	fields := models.MemberFieldsFromForm(r.PostForm)

	iid, ok := scope.Session.IID()
	if !ok {
		return errors.New("session has no member id")
	}

	// The session mirror is written even if the update below fails.
	scope.Session.MirrorProfile(fields)
	if err := scope.Session.Save(r, w); err != nil {
		return err
	}

	if err := scope.Members.Update(scope.Ctx, iid, fields); err != nil {
		return err
	}
	logRequest(scope.Ctx, "info", "Member updated", zap.Int64("iid", iid))

	member, err := scope.Members.FindByName(scope.Ctx, fields.Name)
	if errors.Is(err, database.ErrMemberNotFound) {
		return h.demote(w, r, scope, fields.Name)
	}
	if err != nil {
		return err
	}

	return h.views.Render(w, http.StatusOK, views.Index, views.PageData{User: member})
}

// Logout handles GET /logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
	cleared := scope.Session.Len()
	scope.Session.Clear()
	if err := scope.Session.Save(r, w); err != nil {
		return err
	}

	logRequest(scope.Ctx, "info", "Logged out", zap.Int("cleared_keys", cleared))
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// demote drops a display name that no longer matches any member and sends
// the browser back to the login page.
func (h *ProfileHandler) demote(w http.ResponseWriter, r *http.Request, scope *RequestScope, name string) error {
	scope.Session.Demote()
	if err := scope.Session.Save(r, w); err != nil {
		return err
	}

	logRequest(scope.Ctx, "info", "Session bound to missing member, demoted", zap.String("nm", name))
	http.Redirect(w, r, "/login", http.StatusFound)
	return nil
}
