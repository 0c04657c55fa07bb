package database

import "errors"

// Conflict errors checked proactively before writes. The schema carries matching
// unique constraints as a backstop, so a lost check-then-write race still fails
// at the storage layer rather than corrupting data.
var (
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrDuplicateHolder        = errors.New("client is already a holder on this account")
	ErrDuplicateAssociation   = errors.New("client is already associated with this shop")
)
