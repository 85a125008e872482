// Package models defines the storefront records persisted in the key-value
// store and the fixed reward catalogue.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/common"
)

// User is a registered account. Password holds an argon2id hash, or the
// plaintext of records imported from older storefront data.
type User struct {
	ID         int64     `json:"id"`
	Fullname   string    `json:"fullname"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Rewards    int       `json:"rewards"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SplitName splits a full name on its first space.
func SplitName(fullname string) (first, last string) {
	first, last, _ = strings.Cut(fullname, " ")
	return first, last
}

// Session is the password-free projection of the logged-in User plus the
// signed token that proves it.
type Session struct {
	ID         int64     `json:"id"`
	Fullname   string    `json:"fullname"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Rewards    int       `json:"rewards"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	Token      string    `json:"token,omitempty"`
}

// NewSession projects u into a Session, filling names and city the same way
// older records expect.
func NewSession(u User, token string) Session {
	first, last := u.FirstName, u.LastName
	if first == "" {
		first, _ = SplitName(u.Fullname)
	}
	if last == "" {
		_, last = SplitName(u.Fullname)
	}
	city := u.City
	if city == "" {
		city = common.DefaultCity
	}

	return Session{
		ID:         u.ID,
		Fullname:   u.Fullname,
		FirstName:  first,
		LastName:   last,
		Email:      u.Email,
		Phone:      u.Phone,
		Address:    u.Address,
		City:       city,
		PostalCode: u.PostalCode,
		Rewards:    u.Rewards,
		CreatedAt:  u.CreatedAt,
		Token:      token,
	}
}

// IsNew reports whether the account was created within the last 24 hours.
// A zero CreatedAt is never new.
func (s Session) IsNew(now time.Time) bool {
	if s.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(s.CreatedAt) <= 24*time.Hour
}

// Profile carries the editable account fields. Empty fields are left unchanged.
type Profile struct {
	Fullname   string `json:"fullname"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Apply merges the non-empty fields of p into u.
func (p Profile) Apply(u *User) {
	if p.Fullname != "" {
		u.Fullname = p.Fullname
		u.FirstName, u.LastName = SplitName(p.Fullname)
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Address != "" {
		u.Address = p.Address
	}
	if p.City != "" {
		u.City = p.City
	}
	if p.PostalCode != "" {
		u.PostalCode = p.PostalCode
	}
}
