package response

const (
	MessageSuccess = "Success"

	DefaultErrorMessage     = "Internal Server Error"
	InternalServerErrorCode = 500
)

// DateTimeFormat is the wire format of the DateTime type.
const DateTimeFormat = "2006-01-02 15:04:05"
