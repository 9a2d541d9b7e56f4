// internal/util/errors.go
// Error aplikasi dengan kode kategori (dipakai untuk hasil seleksi sumur)

package util

import (
	"errors"
	"fmt"
)

const (
	CodeBadInput     = "bad_input"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeUnavailable  = "unavailable"
	CodeBadData      = "bad_data"
	CodeInternal     = "internal"
)

type AppError struct {
	Code    string // lihat konstanta Code*
	Message string
}

func (e AppError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func BadInput(msg string) AppError     { return AppError{Code: CodeBadInput, Message: msg} }
func NotFound(msg string) AppError     { return AppError{Code: CodeNotFound, Message: msg} }
func Unauthorized(msg string) AppError { return AppError{Code: CodeUnauthorized, Message: msg} }
func Unavailable(msg string) AppError  { return AppError{Code: CodeUnavailable, Message: msg} }
func BadData(msg string) AppError      { return AppError{Code: CodeBadData, Message: msg} }
func Internal(msg string) AppError     { return AppError{Code: CodeInternal, Message: msg} }

// CodeOf mengembalikan kode AppError di dalam rantai err, atau "" jika tidak ada.
func CodeOf(err error) string {
	var ae AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
