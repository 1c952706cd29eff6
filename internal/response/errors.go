package response

// ErrCode is the stable rejection vocabulary surfaced to API clients. The set
// is closed; handlers map every failure onto exactly one of these.
type ErrCode string

const (
	ErrUnauthenticated    ErrCode = "UNAUTHENTICATED"
	ErrInvalidArgument    ErrCode = "INVALID_ARGUMENT"
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrPermissionDenied   ErrCode = "PERMISSION_DENIED"
	ErrFailedPrecondition ErrCode = "FAILED_PRECONDITION"
	ErrAlreadyExists      ErrCode = "ALREADY_EXISTS"
	ErrResourceExhausted  ErrCode = "RESOURCE_EXHAUSTED"
	ErrInternal           ErrCode = "INTERNAL"
)

// GetMessage returns the default human-readable message for an error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrUnauthenticated:
		return "User must be authenticated."
	case ErrInvalidArgument:
		return "Invalid or missing request fields."
	case ErrNotFound:
		return "Resource not found."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrFailedPrecondition:
		return "Operation cannot be performed in the current state."
	case ErrAlreadyExists:
		return "Resource already exists."
	case ErrResourceExhausted:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal error occurred."
	default:
		return "An unexpected error occurred."
	}
}
