package serverutils

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func ErrorResponse(code int, message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}
