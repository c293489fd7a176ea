package user

import "familyledger/internal/domain/failure"

var (
	ErrNotFound           = failure.New(failure.KindNotFound, "user_not_found", "user not found")
	ErrDuplicateUsername  = failure.New(failure.KindBusinessRule, "duplicate_username", "username already exists")
	ErrInactive           = failure.New(failure.KindBusinessRule, "inactive_account", "account is inactive")
	ErrInvalidCredentials = failure.New(failure.KindBusinessRule, "invalid_credentials", "invalid username or password")
	ErrInvalidRole        = failure.New(failure.KindValidation, "invalid_role", "role must be admin or client")
	ErrEmptyDisplayName   = failure.New(failure.KindValidation, "invalid_display_name", "display name is required")
	ErrSelfDeactivation   = failure.New(failure.KindBusinessRule, "self_deactivation", "you cannot deactivate your own account")
	ErrUnauthenticated    = failure.New(failure.KindUnauthorized, "unauthenticated", "authentication required")
	ErrForbidden          = failure.New(failure.KindForbidden, "admin_required", "admin role required")
)
