package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//404
	ErrNotFound = errors.New("not found")
	//競合
	ErrConflict = errors.New("conflict")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403　権限
	ErrForbidden = errors.New("forbidden")
	//500
	ErrInternal = errors.New("internal error")
)

// 注文まわり（それぞれ上のどれかに属する）
var (
	ErrEmptyCart         = fmt.Errorf("empty cart: %w", ErrValidation)
	ErrInsufficientStock = fmt.Errorf("insufficient stock: %w", ErrValidation)
	ErrNotCancellable    = fmt.Errorf("not cancellable: %w", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("invalid status transition: %w", ErrConflict)
)

// handlerでそのままレスポンスにできるエラー
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ステータスから分類を決める
func NewHTTPError(status int, message string) error {
	return &HTTPError{Status: status, Message: message, Err: classOf(status)}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func classOf(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}

func badRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func notFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func conflict(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// sentinelつきのエラー
func withCause(status int, message string, cause error) error {
	return &HTTPError{Status: status, Message: message, Err: cause}
}

// 原因はログ用に持っておき、クライアントには出さない
func internal(cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Server error",
		Err:     errors.Join(ErrInternal, cause),
	}
}
