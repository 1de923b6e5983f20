// Package validator provides small, composable validation rules for
// user-submitted strings.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Rules are evaluated either with Apply, which collects every failure, or
// with First, which stops at the first failing rule and is what form
// handlers use to report a single actionable message.
//
// # Usage
//
//	err := validator.First(
//	    validator.RequiredString("email", email),
//	    validator.ValidEmail("email", email).WithMessage("Please enter a valid email address."),
//	)
//	if err != nil {
//	    msg := validator.FirstMessage(err)
//	    // render msg
//	}
//
// # Error Handling
//
// ValidationErrors implements error, so failures can be returned through
// ordinary error paths and recovered with ExtractValidationErrors or
// IsValidationError.
package validator
