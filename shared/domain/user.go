package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	PassHash  string
	CreatedAt time.Time
}

// Author is the public projection of a User embedded in posts and comments.
type Author struct {
	Id       UserId   `json:"id"`
	Username Username `json:"username"`
}

func (u User) Author() Author {
	return Author{Id: u.Id, Username: u.Username}
}

type Credentials struct {
	Username Username
	Password Password
}
