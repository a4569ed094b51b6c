package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NoticeLevel gravedad de un aviso mostrado junto al dashboard.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// NoticeDTO aviso no fatal: resultado vacío (info) o falla de la consulta (error).
type NoticeDTO struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
