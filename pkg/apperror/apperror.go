package apperror

import (
	"fmt"
	"net/http"

	"github.com/samber/oops"
)

// Code identifica o tipo de um erro de aplicação
type Code string

// Códigos de erro da aplicação
const (
	CodeValidation         Code = "validation"
	CodeQuotaExceeded      Code = "quota_exceeded"
	CodeCompletionFailure  Code = "completion_failure"
	CodeCompletionTimeout  Code = "completion_timeout"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeInternal           Code = "internal"
	CodeServiceUnavailable Code = "service_unavailable"
)

// New cria um erro com código e mensagem pública
func New(code Code, msg string, keysAndValues ...any) error {
	return oops.Code(code).With(keysAndValues...).New(msg)
}

// Errorf cria um erro com código e mensagem formatada
func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

// Wrap associa um código e uma mensagem a um erro existente
func Wrap(err error, code Code, msg string, keysAndValues ...any) error {
	if err == nil {
		return nil
	}
	return oops.Code(code).With(keysAndValues...).Wrapf(err, "%s", msg)
}

// CodeOf retorna o código associado ao erro, ou "" se não houver
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}
	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}
	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

// HasCode informa se o erro carrega o código informado
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Mensagens fixas para os códigos cujo detalhe não deve chegar ao cliente
var opaqueMessages = map[Code]string{
	CodeInternal:           "Erreur interne du serveur",
	CodeCompletionFailure:  "Erreur lors de la génération de la réponse",
	CodeCompletionTimeout:  "Le service de réponse n'a pas répondu à temps",
	CodeServiceUnavailable: "Service temporairement indisponible",
}

// PublicMessage retorna a mensagem adequada para o cliente.
// Erros criados com New/Errorf expõem a própria mensagem; erros internos,
// de completion ou sem código recebem uma mensagem genérica.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}

	code := CodeOf(err)
	if code == "" {
		return opaqueMessages[CodeInternal]
	}
	if msg, ok := opaqueMessages[code]; ok {
		return msg
	}

	oopsErr, _ := oops.AsOops(err)
	return oopsErr.Error()
}

// HTTPStatus converte o código do erro em status HTTP
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeQuotaExceeded, CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
