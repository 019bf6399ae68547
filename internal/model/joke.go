package model

import "time"

type Joke struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Name         string    `db:"name" json:"name"`
	Content      string    `db:"content" json:"content"`
	JokesterUUID string    `db:"jokester_uuid" json:"jokester_uuid"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
