package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// IDPath addresses a single row of a route group.
	IDPath = "/:id"

	// IDParam is the route parameter holding the row id.
	IDParam = "id"

	// MsgInvalidID is returned for an id that is not a positive number.
	MsgInvalidID = "Invalid id"

	// MsgValidationFailed is returned with the field errors of a rejected body.
	MsgValidationFailed = "validation failed"

	// MsgInvalidBody is returned when the request body can not be decoded.
	MsgInvalidBody = "Invalid request body"
)
