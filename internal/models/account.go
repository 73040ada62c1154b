package models

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Account is a self-registered customer account. Passwords are stored and
// compared in plaintext against static values; there is no real credential
// security in this system.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session identifies a logged-in user. It is carried in the JWT, not in the
// synchronized collections.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
