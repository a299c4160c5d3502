// Package errors provides the structured error type used across salty-deadlands.
//
// Errors carry a Code, a user-facing message, an optional cause and
// metadata. Wrapping keeps the code of the innermost *Error so callers can
// branch on it after several layers.
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InvalidArgumentf("invalid dice code: %q", code)
//
// Wrapping errors:
//
//	if err := sheet.Validate(); err != nil {
//	    return errors.Wrap(err, "invalid character sheet")
//	}
//
// Checking errors:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", sheet.Name, vb)
//	errors.ValidateMin("size", sheet.Size, 1, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Roll outcomes such as a bust or a failed target number check are domain
// values in package dice, never errors.
package errors
