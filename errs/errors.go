package errs

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type ErrType string

const (
	INTERNAL_ERROR  ErrType = "INTERNAL ERROR"
	BAD_INPUT_ERROR ErrType = "BAD INPUT ERROR"
	ASSERTION_ERROR ErrType = "ASSERTION ERROR"
	UNKNOWN_ERROR   ErrType = "UNKNOWN ERROR"
)

// baseError は各エラー型で共通のメッセージとラップ元エラーを保持する
type baseError struct {
	message string
	wrapped error
}

func (e *baseError) Error() string {
	if e.wrapped == nil {
		return e.message
	}
	return e.message + ": " + e.wrapped.Error()
}

func (e *baseError) Unwrap() error {
	return e.wrapped
}

// 内部的なエラー
type InternalError struct {
	baseError
}

func NewInternalError(message string) *InternalError {
	return &InternalError{baseError{message: message}}
}

func (e *InternalError) Wrap(err error) error {
	e.wrapped = err
	return e
}

// ユーザー起因の無効な入力エラー
type BadInputError struct {
	baseError
}

func NewBadInputError(message string) *BadInputError {
	return &BadInputError{baseError{message: message}}
}

func (e *BadInputError) Wrap(err error) error {
	e.wrapped = err
	return e
}

// スモークテストで期待値と実際の出力が一致しなかったことを表す
type AssertionError struct {
	baseError
	Want string
	Got  string
}

func NewAssertionError(message, want, got string) *AssertionError {
	return &AssertionError{
		baseError: baseError{message: fmt.Sprintf("%s: want %q, got %q", message, want, got)},
		Want:      want,
		Got:       got,
	}
}

func (e *AssertionError) Wrap(err error) error {
	e.wrapped = err
	return e
}

// TypeOf はエラーの種別を判定する
func TypeOf(err error) ErrType {
	var internalErr *InternalError
	var badInputErr *BadInputError
	var assertionErr *AssertionError
	switch {
	case errors.As(err, &internalErr):
		return INTERNAL_ERROR
	case errors.As(err, &badInputErr):
		return BAD_INPUT_ERROR
	case errors.As(err, &assertionErr):
		return ASSERTION_ERROR
	default:
		return UNKNOWN_ERROR
	}
}

func IsBadInput(err error) bool {
	return TypeOf(err) == BAD_INPUT_ERROR
}

// Fprint はエラーを種別付きの赤字でwに書き出す
func Fprint(w io.Writer, err error) {
	fmt.Fprintf(w, "\n\033[31m[%s]\n %s\033[0m\n\n", TypeOf(err), err.Error())
}

// エラーを標準出力に表示する
func HandleError(err error) {
	Fprint(os.Stdout, err)
}
