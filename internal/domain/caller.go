package domain

// Caller is the authenticated agent making a request
type Caller struct {
	Email   string
	IsAdmin bool
}

// Owns reports whether the caller is the owner of email's resources
func (c Caller) Owns(email string) bool {
	return c.Email != "" && NormalizeEmail(c.Email) == NormalizeEmail(email)
}

// CanView reports whether the caller may read resources of email
func (c Caller) CanView(email string) bool {
	return c.IsAdmin || c.Owns(email)
}
