package server

import (
	"errors"
	"fmt"
)

// Error error dengan kode kategori (ErrNotFound, ErrBadParamInput, ...) untuk di map ke http status.
// msg ditampilkan ke client, orig cuma untuk log.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// CodeOf kode dari *Error pertama di chain err, ErrInternalServerError kalau tidak ada.
func CodeOf(err error) error {
	var ierr *Error
	if !errors.As(err, &ierr) {
		return ErrInternalServerError
	}
	return ierr.Code()
}

var (
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound lokasi/vertex yang diminta tidak ada di map
	ErrNotFound = errors.New("requested item is not found")
	// ErrBadParamInput request body / query param tidak valid
	ErrBadParamInput = errors.New("given param is not valid")
)
