package models

import "time"

type LedgerKind string

const (
	LedgerEarn   LedgerKind = "earn"
	LedgerRedeem LedgerKind = "redeem"
	// LedgerDeduct takes back points earned by a cancelled order.
	LedgerDeduct LedgerKind = "deduct"
)

// LedgerEntry records one movement of a user's points. Points is always
// positive; Kind gives the direction.
type LedgerEntry struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"userId"`
	Kind        LedgerKind `json:"kind"`
	Points      int        `json:"points"`
	Description string     `json:"description"`
	Code        string     `json:"code,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Signed returns Points with the sign of the movement.
func (e LedgerEntry) Signed() int {
	if e.Kind == LedgerRedeem || e.Kind == LedgerDeduct {
		return -e.Points
	}
	return e.Points
}
