package handlers

// ErrorResponse — единый формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse — ответ health-эндпоинта.
type StatusResponse struct {
	Status     string `json:"status"`
	Connection string `json:"connection,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

// UnreadResponse — остаток непрочитанных после мутации.
type UnreadResponse struct {
	Unread int `json:"unread"`
}
