// Package handler is the HTTP entry point after the router.
//
// It reads the submitted fields from the request, calls the service layer
// and writes the {success, message} result with a status that reflects it.
package handler
