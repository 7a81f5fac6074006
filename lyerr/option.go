package lyerr

import "fmt"

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithPath(path string) Option   { return func(e *Error) { e.Path = path } }
func WithSegment(idx int) Option    { return func(e *Error) { e.Segment = idx } }

func WithMessagef(format string, args ...interface{}) Option {
	return func(e *Error) { e.Message = fmt.Sprintf(format, args...) }
}
