package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	parseErrorPrefix   = "parse error"
	missingFieldPrefix = "missing required field"
)

// NewParseError reports malformed build configuration input. line is
// omitted from the message when zero.
func NewParseError(line int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if line > 0 {
		msg = fmt.Sprintf("%s at line %d: %s", parseErrorPrefix, line, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", parseErrorPrefix, msg)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

func NewMissingFieldError(field string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s", missingFieldPrefix, field))
}

func IsParseError(err error) bool {
	return err != nil &&
		errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument &&
		hasMessagePrefix(err, parseErrorPrefix)
}

func IsMissingField(err error) bool {
	return err != nil &&
		errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition &&
		hasMessagePrefix(err, missingFieldPrefix)
}

func hasMessagePrefix(err error, prefix string) bool {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return strings.HasPrefix(builder.Msg, prefix)
	}
	return strings.HasPrefix(err.Error(), prefix)
}
