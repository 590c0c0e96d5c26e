package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Submission and review codes
	InvalidState Code = 200001

	// Points codes
	InsufficientBalance Code = 300001
)

var codeNames = map[Code]string{
	BadRequest:          "validation_error",
	BadResponse:         "bad_response",
	PermissionDenied:    "permission_denied",
	NotFound:            "not_found",
	Unauthenticated:     "unauthenticated",
	AlreadyExists:       "conflict",
	Internal:            "internal",
	Unavailable:         "unavailable",
	NotImplemented:      "not_implemented",
	TooManyRequests:     "too_many_requests",
	InvalidState:        "invalid_state",
	InsufficientBalance: "insufficient_balance",
}

// Kind returns a stable machine-readable name of the code.
func (c Code) Kind() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "unknown"
}
