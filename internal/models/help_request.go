package models

import (
	"time"

	"github.com/gocql/gocql"
)

type HelpReply struct {
	From    string    `json:"from"` // "customer" or "support"
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

type HelpRequest struct {
	ID        gocql.UUID  `json:"id"`
	Email     string      `json:"email"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	Status    string      `json:"status"` // open | resolved
	Replies   []HelpReply `json:"replies,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
