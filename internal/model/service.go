package model

// Service is a treatment offered by the clinic. Rows are seeded and read-only afterwards.
type Service struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Icon        string `db:"icon" json:"icon"`
}
