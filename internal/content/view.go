package content

import "sync"

type View string

const (
	ViewPublic View = "public"
	ViewLogin  View = "login"
	ViewAdmin  View = "admin"
)

// ViewSwitch tracks which top-level view a visitor sees. The admin view is
// only reachable while authenticated.
type ViewSwitch struct {
	mu            sync.Mutex
	view          View
	authenticated bool
}

func NewViewSwitch(authenticated bool) *ViewSwitch {
	return &ViewSwitch{view: ViewPublic, authenticated: authenticated}
}

func (v *ViewSwitch) Current() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.view == ViewAdmin && !v.authenticated {
		return ViewLogin
	}
	return v.view
}

func (v *ViewSwitch) Authenticated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.authenticated
}

func (v *ViewSwitch) RequestLogin() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.authenticated {
		v.view = ViewAdmin
	} else {
		v.view = ViewLogin
	}
	return v.view
}

func (v *ViewSwitch) LoginSucceeded() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.authenticated = true
	v.view = ViewAdmin
	return v.view
}

func (v *ViewSwitch) CancelLogin() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.view == ViewLogin {
		v.view = ViewPublic
	}
	return v.view
}

func (v *ViewSwitch) Logout() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.authenticated = false
	v.view = ViewPublic
	return v.view
}

func (v *ViewSwitch) RequestAdmin() View {
	return v.RequestLogin()
}
