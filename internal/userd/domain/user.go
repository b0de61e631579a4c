package domain

import "time"

// UserStatus is the account-state flag consulted during token validation.
// Only active accounts pass validation.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
	StatusNone     UserStatus = "NONE"
	StatusBlocked  UserStatus = "BLOCKED"
)

// ValidStatus reports whether s is one of the known account states.
func ValidStatus(s UserStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusNone, StatusBlocked:
		return true
	}
	return false
}

type UserType string

const (
	TypeAdmin  UserType = "ADMIN"
	TypeMember UserType = "MEMBER"
	TypeUser   UserType = "USER"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User is the principal tokens are issued for. Username is the stable
// identifier embedded as the token subject.
type User struct {
	ID           string
	FullName     string
	Gender       Gender
	DateOfBirth  time.Time
	Email        string
	PhoneNumber  string
	Username     string
	PasswordHash string // argon2id PHC string
	Status       UserStatus
	Type         UserType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Enabled reports whether the account may authenticate and hold valid
// tokens. Freshly registered accounts start as NONE and may log in;
// INACTIVE and BLOCKED accounts may not.
func (u User) Enabled() bool {
	return u.Status == StatusActive || u.Status == StatusNone
}

// Address is one of a user's typed addresses; at most one per
// AddressType.
type Address struct {
	ID              string
	UserID          string
	ApartmentNumber string
	Floor           string
	Building        string
	StreetNumber    string
	Street          string
	City            string
	Country         string
	AddressType     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
