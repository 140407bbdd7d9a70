package events

import "time"

// Event types
const (
	UserRegistered     = "user.registered"
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	Email string `json:"email"`
}

type TransactionCreatedEvent struct {
	TransactionID int64   `json:"transactionId"`
	OwnerEmail    string  `json:"ownerEmail"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
}

type TransactionDeletedEvent struct {
	TransactionID int64  `json:"transactionId"`
	OwnerEmail    string `json:"ownerEmail"`
}
