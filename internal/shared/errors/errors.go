// Package apperrors définit les erreurs métier communes à tous les services
// et leur correspondance HTTP.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindRateLimited  Kind = "rate_limited"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// ServiceError erreur métier commune. Message est destiné au client,
// Err conserve la cause technique pour les logs.
type ServiceError struct {
	Kind    Kind                   `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WithDetail ajoute un détail et retourne l'erreur
func (e *ServiceError) WithDetail(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func newError(kind Kind, code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Kind: kind, Code: code, Message: message, Details: details}
}

func Validation(code, message string, details map[string]interface{}) *ServiceError {
	return newError(KindValidation, code, message, details)
}

func NotFound(code, message string) *ServiceError {
	return newError(KindNotFound, code, message, nil)
}

func Conflict(code, message string, details map[string]interface{}) *ServiceError {
	return newError(KindConflict, code, message, details)
}

func Unauthorized(code, message string) *ServiceError {
	return newError(KindUnauthorized, code, message, nil)
}

func Forbidden(code, message string) *ServiceError {
	return newError(KindForbidden, code, message, nil)
}

func RateLimited(code, message string, details map[string]interface{}) *ServiceError {
	return newError(KindRateLimited, code, message, details)
}

func Unavailable(code, message string, err error) *ServiceError {
	e := newError(KindUnavailable, code, message, nil)
	e.Err = err
	return e
}

// Internal enveloppe une erreur technique, sa cause n'est jamais exposée au client
func Internal(err error, message string) *ServiceError {
	e := newError(KindInternal, "INTERNAL_ERROR", message, nil)
	e.Err = err
	return e
}

// As extrait une ServiceError de la chaîne d'erreurs
func As(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsKind vérifie le type d'une erreur métier
func IsKind(err error, kind Kind) bool {
	svcErr, ok := As(err)
	return ok && svcErr.Kind == kind
}

// HTTPStatus retourne le code HTTP correspondant. Un conflit de clé unique
// est une erreur de requête (400) pour les clients existants.
func HTTPStatus(err error) int {
	svcErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch svcErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
