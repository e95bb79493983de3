// Package apperror turns store failures into the JSON error envelope clients see.
//
// Every persistence error maps to 500 "Database Error." with the driver's text in
// details, including a single-row fetch that matched nothing. Clients of the
// legacy API depend on that, so there is no 404 path here.
package apperror

import "net/http"

const MessageDatabaseError = "Database Error."

type Response struct {
	Success bool   `json:"success"`
	Error   Detail `json:"error"`
}

type Detail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FromDatabase is the only place a store error becomes an HTTP status.
func FromDatabase(err error) (int, Response) {
	status := http.StatusInternalServerError
	resp := Response{
		Success: false,
		Error: Detail{
			Code:    status,
			Message: MessageDatabaseError,
		},
	}
	if err != nil {
		resp.Error.Details = err.Error()
	}
	return status, resp
}
