package models

import "time"

// Role enumerates user permission levels.
type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

var roleRank = map[Role]int{RoleUser: 1, RoleSeller: 2, RoleAdmin: 3}

// AtLeast reports whether r grants the permissions of required. Unknown
// roles grant nothing. Ordering: USER < SELLER < ADMIN.
func (r Role) AtLeast(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[required]
}

// User is an account. PasswordHash is nil for externally-authenticated
// accounts. Email is stored lower-cased and unique.
type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	SignupSource string    `db:"signup_source" json:"signupSource"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
