package models

// Category groups products within a division. A category cannot be deleted
// while at least one product still references it.
type Category struct {
	ID       int      `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Slug     string   `db:"slug" json:"slug"`
	Division Division `db:"division" json:"division"`
}
