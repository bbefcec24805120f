package admins

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrAccountDisabled       = errors.New("Account is disabled")
	ErrInvalidEmailDomain    = errors.New("Admin email must belong to the admin domain")
	ErrWeakPassword          = errors.New("Password must be at least 6 characters")
	ErrFullNameRequired      = errors.New("Full name is required")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrAlreadyExists         = errors.New("Admin already exists")
	ErrSuperAdminOnly        = errors.New("Only super admin can perform this action")
)
