// Package guard provides ConstructorGuard, which lets value objects, entities,
// commands and queries detect that they were built by their constructor rather
// than declared as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. The zero value reports
// "not constructed"; NewConstructorGuard reports "constructed".
//
// Example:
//
//	type SetStatusCommand struct {
//	    status order.Status
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SetStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
