// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - Money: positive fixed-currency amount for order totals
//
// All kernel types are immutable value objects constructed through factory
// functions that enforce their invariants. Zero values are invalid and are
// rejected by the Validate methods.
package kernel
