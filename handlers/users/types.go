package users

// Error messages constants
const (
	ErrUserNotFound         = "User not found"
	ErrEmailInUse           = "Email already in use"
	ErrFailedToUpdate       = "Failed to update profile"
	ErrFailedToUpdatePass   = "Failed to update password"
	ErrWrongCurrentPassword = "Current password is incorrect"
	PasswordUpdatedMessage  = "Password updated successfully"
)

// ProfileUpdate is the editable part of a user profile
type ProfileUpdate struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
}

// PasswordUpdate represents a password update request
type PasswordUpdate struct {
	CurrentPassword string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
