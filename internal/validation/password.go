package validation

// ValidatePassword checks password length. bcrypt ignores everything past
// 72 bytes, so longer passwords are refused instead of silently truncated.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fieldError("password", "password must be at least 6 characters")
	}
	if len(password) > 72 {
		return fieldError("password", "password must not exceed 72 characters")
	}
	return nil
}
