package request

// TokenRequest is the request body for minting an access token
type TokenRequest struct {
	Email string `json:"email"`
}

// StartSessionRequest is the request body for starting a session
type StartSessionRequest struct {
	Mode string `json:"mode"`
}

// ShotPayload is the payload of a SHOT event. Pointer fields distinguish
// absent values from zero values at validation time.
type ShotPayload struct {
	Hit      *bool    `json:"hit"`
	Distance *float64 `json:"distance"`
}

// AddEventRequest is the request body for recording an event
type AddEventRequest struct {
	Type    string      `json:"type"`
	TS      string      `json:"ts"`
	Payload ShotPayload `json:"payload"`
}
