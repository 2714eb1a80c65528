package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse representa uma resposta com apenas uma mensagem
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse representa o estado da API
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: details,
	}
}
