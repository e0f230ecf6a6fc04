package models

import "time"

// AddressCountry is fixed; the store only ships domestically.
const AddressCountry = "Chile"

// Address is a user's delivery address. Each user has at most one; writes are
// upserts keyed on the owning user.
type Address struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"-"`
	Recipient string    `db:"recipient" json:"recipient"`
	Line1     string    `db:"line1" json:"line1"`
	Line2     string    `db:"line2" json:"line2"`
	Phone     string    `db:"phone" json:"phone"`
	Country   string    `db:"country" json:"country"`
	Province  string    `db:"province" json:"province"`
	City      string    `db:"city" json:"city"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
