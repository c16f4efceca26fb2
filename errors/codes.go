package errors

// ErrorCode is the machine readable code carried by AppError
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001
	ErrorCode_INVALID_SIGNATURE  ErrorCode = 2002

	// Processing
	ErrorCode_INVALID_PAYLOAD     ErrorCode = 3000
	ErrorCode_PROCESSING_FAILED   ErrorCode = 3001
	ErrorCode_EXTERNAL_API_FAILED ErrorCode = 3002
	ErrorCode_DB_QUERY_FAILED     ErrorCode = 3003
	ErrorCode_DISPATCH_FAILED     ErrorCode = 3004
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:             "OK",
	ErrorCode_INTERNAL:            "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:    "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:           "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:      "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:   "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:     "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:  "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:  "AUTH_TOKEN_EXPIRED",
	ErrorCode_INVALID_SIGNATURE:   "INVALID_SIGNATURE",
	ErrorCode_INVALID_PAYLOAD:     "INVALID_PAYLOAD",
	ErrorCode_PROCESSING_FAILED:   "PROCESSING_FAILED",
	ErrorCode_EXTERNAL_API_FAILED: "EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:     "DB_QUERY_FAILED",
	ErrorCode_DISPATCH_FAILED:     "DISPATCH_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
