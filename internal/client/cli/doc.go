// Package cli provides the interactive MochaMagic terminal storefront.
//
// It wires configuration, the key-value store, the storefront services and
// an optional rewards API client behind a line-oriented REPL. Banners are
// printed as they are raised and page changes requested by the services are
// carried out after the command that queued them, once their delay passed.
//
// Commands:
//   - signup / login / logout / profile
//   - menu, add, remove, qty, cart, clear
//   - checkout, orders
//   - rewards, redeem
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
