package models

// Customer represents a storefront account. The password hash never leaves
// the process.
type Customer struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	AcceptsMarketing bool   `json:"acceptsMarketing"`
	PasswordHash     string `json:"-"`
}
