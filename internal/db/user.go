package db

import (
	"gorm.io/gorm"

	"stationmap/internal/auth"
)

// UserPatch describes a partial update to a user. Nil fields are left
// unchanged. Supplying Password rotates both salt and digest.
type UserPatch struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Email      *string `json:"email"`
	SuperAdmin *bool   `json:"super_admin"`
}

// AddUser creates a user with a freshly salted password digest and
// returns its ID.
func AddUser(db *gorm.DB, username, password string, email *string, superAdmin bool) (uint, error) {
	salt, err := auth.NewSalt()
	if err != nil {
		return 0, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
		SuperAdmin:   superAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		return 0, translate(err)
	}
	return user.ID, nil
}

// GetUser returns a user by ID with its sessions loaded.
func GetUser(db *gorm.DB, userID uint) (*User, error) {
	var user User
	if err := db.Preload("Sessions").First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetAllUsers returns every user, for the admin account listing.
func GetAllUsers(db *gorm.DB) ([]User, error) {
	var users []User
	if err := db.Preload("Sessions").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies the supplied fields of the patch to an existing
// user.
func UpdateUser(db *gorm.DB, userID uint, patch UserPatch) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if patch.Username != nil {
			user.Username = *patch.Username
		}
		if patch.Password != nil {
			salt, err := auth.NewSalt()
			if err != nil {
				return err
			}
			user.Salt = salt
			user.PasswordHash = auth.HashPassword(*patch.Password, salt)
		}
		if patch.Email != nil {
			user.Email = patch.Email
		}
		if patch.SuperAdmin != nil {
			user.SuperAdmin = *patch.SuperAdmin
		}

		return tx.Save(&user).Error
	})
	return translate(err)
}

// SetPassword replaces the user's salt and digest with values derived
// from the new plaintext.
func SetPassword(db *gorm.DB, userID uint, password string) error {
	return UpdateUser(db, userID, UserPatch{Password: &password})
}

// DeleteUser removes a user and all of its sessions in one transaction,
// so a crash can never leave orphaned sessions behind.
func DeleteUser(db *gorm.DB, userID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return translate(err)
}

// VerifyUser checks a username/password pair and returns the user's ID
// on success. Unknown username and wrong password both come back as
// ErrInvalidCredentials; the caller cannot tell which.
func VerifyUser(db *gorm.DB, username, password string) (uint, error) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if translate(err) == ErrNotFound {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if auth.HashPassword(password, user.Salt) != user.PasswordHash {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// IsInsecureUserPresent reports whether the seeded admin/password
// account can still log in, so the UI can warn the operator.
func IsInsecureUserPresent(db *gorm.DB) bool {
	_, err := VerifyUser(db, "admin", "password")
	return err == nil
}
