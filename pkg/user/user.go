package user

import "time"

type User struct {
	Id        int
	Uid       string
	Name      string
	Email     string
	// Currency is the ISO code used when formatting amounts in notifications.
	Currency  string
	CreatedAt time.Time
}
