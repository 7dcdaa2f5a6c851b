package userservice

// Verification статус проверки личности пользователя из UserService
type Verification struct {
	UserID   int64 `json:"userId"`
	Verified bool  `json:"verified"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
