package entity

import "time"

type User struct {
	ID        int64
	Email     string
	FullName  string
	Password  string // hashed
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OTPRecord is one row of the one-time code ledger.
//
// A record is usable when UsedAt is nil and ExpiresAt has not passed. Once
// written, CodeHash, UserID, Purpose, and ExpiresAt never change; the only
// mutation a record ever sees is the consuming UsedAt write.
type OTPRecord struct {
	ID        int64
	UserID    int64
	CodeHash  string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ---- //

type NewUser struct {
	ID       int64
	Email    string
	FullName string
	Password string // hashed
	IsActive bool
}

type NewOTP struct {
	ID        int64
	UserID    int64
	CodeHash  string
	Purpose   OTPPurpose
	ExpiresAt time.Time
}

// ConsumeOTP identifies the record a verify matched, plus the sibling scope
// to clear in the same transaction.
type ConsumeOTP struct {
	RecordID int64
	UserID   int64
	Purpose  OTPPurpose
	UsedAt   time.Time
}
