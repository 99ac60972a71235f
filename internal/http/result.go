package httpapi

// Result is the response envelope every endpoint returns.
// - code: 2000 on success, -1 on error, 60401 for a missing or expired session
// - type: 'success' | 'error'
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultTokenExpired is always sent with HTTP 401
	ResultTokenExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// ListResult is the payload of collection reads.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
