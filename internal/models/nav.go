package models

import "time"

// NavState is the persisted navigation history of the app shell.
type NavState struct {
	Current   string    `json:"current"`
	History   []string  `json:"history"`
	UpdatedAt time.Time `json:"updatedAt"`
}
