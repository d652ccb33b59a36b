package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPassword(t *testing.T) {
	user := &User{Username: "alice", Email: "alice@example.com"}

	err := user.SetPassword("sekrit123")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "sekrit123", user.PasswordHash)

	assert.True(t, user.CheckPassword("sekrit123"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    &User{Username: "alice", Email: "alice@example.com"},
			wantErr: false,
		},
		{
			name:    "username too short",
			user:    &User{Username: "al", Email: "alice@example.com"},
			wantErr: true,
		},
		{
			name:    "bad email",
			user:    &User{Username: "alice", Email: "not-an-email"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				assert.NoError(t, tt.user.SetPassword("sekrit123"))
			} else {
				tt.user.PasswordHash = "x"
			}
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
