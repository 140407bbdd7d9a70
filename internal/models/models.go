package models

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

// Transaction is a single ledger entry. Date is an ISO-8601 calendar date
// string (YYYY-MM-DD); lexicographic order equals chronological order.
type Transaction struct {
	ID           int64   `json:"id"`
	UserEmail    string  `json:"user_email"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
}
