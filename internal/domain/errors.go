package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("token inválido o expirado")
	ErrMissingToken        = errors.New("token de la API obligatorio")
	ErrIncompleteDateRange = errors.New("período incompleto: seleccione fecha inicial y final")
	ErrUpstreamUnavailable = errors.New("no fue posible conectar con la API de reportes")
	ErrSuperseded          = errors.New("consulta reemplazada por una más reciente")
)

// UnauthorizedMessage texto mostrado al usuario cuando la API de origen
// rechaza el token (HTTP 401).
const UnauthorizedMessage = "Token inválido ou expirado."

// UpstreamError respuesta no-2xx de la API de reportes. Message es el campo
// "error" del cuerpo cuando existe y se muestra tal cual al usuario. Un 401
// con mensaje sigue siendo ErrUnauthorized para errors.Is.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Erro HTTP: %d", e.StatusCode)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
