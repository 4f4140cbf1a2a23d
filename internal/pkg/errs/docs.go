// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value is outside its allowed bounds
//   - ObjectNotFoundError: an object cannot be found in its collection
//   - ObjectAlreadyExistsError: an insert collides with an existing key
//   - StatusIsInvalidError: a status is not legal for the targeted collection
//   - UpstreamError: an external collaborator failed after retries
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works
//
// ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange and ObjectAlreadyExists
// together form the validation error family; see IsValidation.
package errs
