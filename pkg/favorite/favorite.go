package favorite

import "time"

// Favorite is a user preference keyed by type and target entity.
// Statistics card selections use type "CARD" with value "position=N";
// category color overrides use type "CATEGORY_COLOR" with a hex value.
type Favorite struct {
	Id     int
	UserId int
	Type   string
	// TargetEntity is the id of the referenced entity (card, category).
	TargetEntity int
	Value        string
	CreatedAt    time.Time
}

const (
	TypeCard          = "CARD"
	TypeCategoryColor = "CATEGORY_COLOR"
)
