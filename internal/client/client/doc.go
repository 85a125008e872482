// Package client talks to the MochaMagic rewards API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Ping and
//     GetRewards.
//  2. A gRPC implementation (see GRPCClient) that manages a connection,
//     attaches the session token as access_token metadata on each call and
//     maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized. An unknown account is reported as
// common.ErrAccountNotFound.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. Every call accepts context.Context and
// is additionally bounded by the client's call timeout.
package client
