package entity

import "time"

type Member struct {
	ID             uint64
	FullName       string
	Email          string
	Phone          string
	TechArea       string
	CurrentCompany string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Credential holds the salted argon2id hash of a member password. The
// plaintext is never persisted.
type Credential struct {
	MemberID     uint64
	PasswordHash string
	Salt         string
}
