package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

func TestAuthorizeMutation(t *testing.T) {
	const owner = "owner-id"

	tests := []struct {
		name   string
		claims *Claims
		want   error
	}{
		{"owner", &Claims{UserID: owner, Role: model.RoleUser}, nil},
		{"other user", &Claims{UserID: "someone-else", Role: model.RoleUser}, apperrors.ErrForbidden},
		{"admin is not the owner", &Claims{UserID: "admin-id", Role: model.RoleAdmin}, apperrors.ErrForbidden},
		{"empty user id", &Claims{Role: model.RoleAdmin}, apperrors.ErrForbidden},
		{"anonymous", nil, apperrors.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeMutation(tt.claims, owner)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorizeUnowned(t *testing.T) {
	assert.NoError(t, AuthorizeUnowned(&Claims{UserID: "u", Role: model.RoleUser}))
	assert.ErrorIs(t, AuthorizeUnowned(nil), apperrors.ErrUnauthenticated)
}
