// Package services provides domain services that coordinate more than one
// fulfillment aggregate.
//
// The package includes:
//   - ReturnFiler: turns a regular order into a return request, refusing to
//     open a second return for the same order
package services
