// Package common contains shared constants and sentinel errors used across
// MochaMagic components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the session
// token on outbound rewards API requests.
const AccessTokenHeaderName = "access_token"

// Storage keys. Each key holds one JSON-encoded value.
const (
	UsersKey       = "mochamagic_users"
	CurrentUserKey = "mochamagic_currentUser"
	CartKey        = "mochamagic_cart"
	LedgerKey      = "mochamagic_ledger"
	OrdersKey      = "mochamagic_orders"
)

// DefaultCity is assigned to new accounts and to sessions without a city.
const DefaultCity = "Karachi"
