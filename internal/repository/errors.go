package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается, если бэкенд не нашёл RFQ.
var ErrNotFound = errors.New("rfq not found")

// BackendError описывает неуспешный ответ бэкенда закупок.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

// MalformedResponseError - ответ бэкенда не прошёл проверку на границе.
type MalformedResponseError struct {
	Resource string
	Field    string
	Value    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: invalid %s %q", e.Resource, e.Field, e.Value)
}
