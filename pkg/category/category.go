package category

import "time"

type Category struct {
	Id        int
	Name      string
	Icon      string
	Color     string
	CreatedAt time.Time
}
