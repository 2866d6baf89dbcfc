package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewSwitchTransitions(t *testing.T) {
	views := NewViewSwitch(false)
	assert.Equal(t, ViewPublic, views.Current())

	assert.Equal(t, ViewLogin, views.RequestAdmin())
	assert.Equal(t, ViewPublic, views.CancelLogin())

	views.RequestLogin()
	assert.Equal(t, ViewAdmin, views.LoginSucceeded())
	assert.True(t, views.Authenticated())

	views.CancelLogin()
	assert.Equal(t, ViewAdmin, views.Current(), "cancel only leaves the login view")

	assert.Equal(t, ViewPublic, views.Logout())
	assert.False(t, views.Authenticated())
	assert.Equal(t, ViewLogin, views.RequestAdmin())
}

func TestViewSwitchAuthenticatedSkipsLogin(t *testing.T) {
	views := NewViewSwitch(true)
	assert.Equal(t, ViewAdmin, views.RequestLogin())
}
