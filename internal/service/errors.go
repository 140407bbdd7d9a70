package service

import "errors"

// Error taxonomy consumed by the HTTP layer. Handlers map these to status
// codes with errors.Is; anything else becomes a 500.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserExists          = errors.New("user exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTransactionNotFound = errors.New("transaction not found")
)
