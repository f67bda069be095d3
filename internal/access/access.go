// Package access holds the per-request authorization decisions. A
// caller is one of three things: unauthenticated, an admin with a valid
// session (user non-nil), or the holder of a station's edit password.
// Decisions are pure checks; no denial path ever mutates anything.
package access

import (
	"crypto/subtle"
	"errors"

	"stationmap/internal/db"
)

var (
	// ErrNotAuthenticated means no identity was established at all.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAuthorized means the identity is valid but lacks the
	// required privilege.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrSecretMismatch means the supplied edit password does not match
	// the station's stored one.
	ErrSecretMismatch = errors.New("edit password does not match")
)

// CanModifyStation decides whether the caller may update or delete a
// station. Admins always may; anonymous callers must present the
// station's edit password. The comparison is constant-time so a miss
// costs the same regardless of how much of the secret matched.
func CanModifyStation(user *db.User, storedSecret, suppliedSecret string) error {
	if user != nil {
		return nil
	}
	if suppliedSecret != "" &&
		subtle.ConstantTimeCompare([]byte(storedSecret), []byte(suppliedSecret)) == 1 {
		return nil
	}
	return ErrSecretMismatch
}

// CanApproveStation decides whether the caller may set a station's
// approved flag. Only admins may; the edit password grants no say over
// moderation.
func CanApproveStation(user *db.User) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// CanCreateUser decides whether the caller may create a new user
// account.
func CanCreateUser(actor *db.User) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !actor.SuperAdmin {
		return ErrNotAuthorized
	}
	return nil
}

// CanListUsers decides whether the caller may enumerate user accounts.
func CanListUsers(actor *db.User) error {
	return CanCreateUser(actor)
}

// CanUpdateUser decides whether the caller may apply the patch to the
// target user. Anyone may update their own username, email and
// password, but changing one's own super-admin flag is rejected even
// for super-admins: granting it to yourself is privilege escalation,
// and dropping it could leave the site with no super-admins at all.
// Updating anybody else requires super-admin.
func CanUpdateUser(actor *db.User, targetID uint, patch db.UserPatch) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if actor.ID == targetID {
		if patch.SuperAdmin != nil && *patch.SuperAdmin != actor.SuperAdmin {
			return ErrNotAuthorized
		}
		return nil
	}
	if !actor.SuperAdmin {
		return ErrNotAuthorized
	}
	return nil
}

// CanDeleteUser decides whether the caller may delete the target user.
// Deleting your own account is allowed; deleting anyone else requires
// super-admin.
func CanDeleteUser(actor *db.User, targetID uint) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if actor.ID == targetID {
		return nil
	}
	if !actor.SuperAdmin {
		return ErrNotAuthorized
	}
	return nil
}
