package auth

import (
	apperrors "portfolio/internal/errors"
)

// AuthorizeMutation allows a write only when the caller owns the record.
// Role is not consulted: admins cannot edit posts they did not write.
func AuthorizeMutation(claims *Claims, ownerID string) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	if claims.UserID == "" || claims.UserID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}

// AuthorizeUnowned allows any authenticated caller to write a record that has no owner.
func AuthorizeUnowned(claims *Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}
