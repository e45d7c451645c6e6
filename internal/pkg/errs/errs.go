package errs

import (
	"errors"
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// WithStack attaches the caller's stack so fault logs can show where an
// invariant broke.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return cr.WithStackDepth(err, 1)
}

// Is understands wrap chains, multi-error trees and marks.
func Is(err, target error) bool {
	return errors.Is(err, target) || cr.Is(err, target)
}

func IsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if Is(err, t) {
			return true
		}
	}
	return false
}

// NewKind declares a sentinel error marked with kind. The outer layer keeps
// a mark of its own so two sentinels of one kind never match each other.
func NewKind(kind error, msg string) error {
	return cr.WithStackDepth(cr.Mark(errors.New(msg), kind), 1)
}

// WithKind marks err as kind while keeping err in the chain.
func WithKind(err error, kind error) error {
	if err == nil {
		return nil
	}
	return cr.Mark(err, kind)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
