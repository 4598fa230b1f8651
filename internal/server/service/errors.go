package service

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки сервисного слоя. Handlers отображают Kind в HTTP статус.
type Kind int

const (
	// KindInternal неожиданная ошибка хранилища или сервиса
	KindInternal Kind = iota
	// KindValidation отсутствующие или некорректные входные данные
	KindValidation
	// KindUnauthorized отсутствующий/невалидный токен или неверные учетные данные
	KindUnauthorized
	// KindNotFound ресурс отсутствует или не принадлежит вызывающему
	KindNotFound
	// KindConflict дубликат уникального поля при регистрации
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error ошибка сервисного слоя. Message безопасно отдавать клиенту,
// Err хранит исходную причину только для логов.
type Error struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf возвращает Kind ошибки. Ошибки не из сервисного слоя считаются KindInternal.
func KindOf(err error) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindInternal
}

// MessageOf возвращает сообщение для клиента. Внутренние детали не раскрываются.
func MessageOf(err error) string {
	var serr *Error
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	return msgInternal
}

const (
	msgInternal           = "internal server error"
	msgInvalidCredentials = "invalid credentials"
	msgUnauthorized       = "unauthorized"
	msgPromptNotFound     = "prompt not found"
)

func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func unauthorized(message string, err error) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: err}
}

func notFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}
