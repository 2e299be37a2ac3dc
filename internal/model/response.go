package model

// Response is the envelope every service operation returns.
// On success Resource holds the affected entity. On failure Message explains
// why and Err keeps the underlying error for status mapping; Err is never
// serialized.
type Response[T any] struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Resource T      `json:"resource,omitempty"`
	Err      error  `json:"-"`
}

// NewSuccessResponse wraps a resource in a successful response
func NewSuccessResponse[T any](resource T) *Response[T] {
	return &Response[T]{
		Success:  true,
		Resource: resource,
	}
}

// NewFailureResponse builds a failed response carrying message and cause
func NewFailureResponse[T any](message string, err error) *Response[T] {
	return &Response[T]{
		Success: false,
		Message: message,
		Err:     err,
	}
}

// Entity response aliases
type (
	CalificationResponse   = Response[*Calification]
	MilitantResponse       = Response[*Militant]
	PoliticalPartyResponse = Response[*PoliticalParty]
)
