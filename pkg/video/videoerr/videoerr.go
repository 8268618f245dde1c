// Package videoerr holds the failure taxonomy shared by every stage of
// the stitch and static region pipelines.
package videoerr

import (
	"errors"
	"fmt"

	"github.com/tauraamui/xerror"
)

const (
	DecodeKind       = xerror.Kind("decode_error")
	PreconditionKind = xerror.Kind("precondition_error")
	EncodeKind       = xerror.Kind("encode_error")
	IOKind           = xerror.Kind("io_error")
)

var (
	ErrDecode       = errors.New("unable to decode video")
	ErrPrecondition = errors.New("frame precondition violated")
	ErrEncode       = errors.New("unable to encode image")
	ErrIO           = errors.New("unable to write output")
)

func Decode(format string, a ...interface{}) error {
	return wrap(ErrDecode, DecodeKind, format, a...)
}

func Precondition(format string, a ...interface{}) error {
	return wrap(ErrPrecondition, PreconditionKind, format, a...)
}

func Encode(format string, a ...interface{}) error {
	return wrap(ErrEncode, EncodeKind, format, a...)
}

func IO(format string, a ...interface{}) error {
	return wrap(ErrIO, IOKind, format, a...)
}

func wrap(sentinel error, kind xerror.Kind, format string, a ...interface{}) error {
	return xerror.Errorf("%w: %s", sentinel, fmt.Sprintf(format, a...)).AsKind(kind)
}
