package model

import "time"

// Todo mirrors a row in the `todos` table. Every todo belongs to
// exactly one user via UserID; repository queries are always scoped
// by that column so one user can never see another user's rows.
//
// Fields:
//  ID        – auto-increment primary key.
//  Task      – short task title.
//  Note      – optional free-form note.
//  Completed – whether the task is done.
//  Due       – due date; defaults to 24h after creation.
//  CreatedAt – timestamp of creation.
//  UserID    – owner (users.id foreign key).
type Todo struct {
	ID        uint64    `json:"id"`
	Task      string    `json:"task"`
	Note      string    `json:"note"`
	Completed bool      `json:"completed"`
	Due       time.Time `json:"due"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
}
