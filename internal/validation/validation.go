// Package validation contains the logic for validating
// submitted form data.
//
// It uses the `validator` library to enforce rules (like
// minimum lengths or email formats) defined in struct tags
// and extracts validation errors, in field order, into a
// format the client can understand.
package validation
