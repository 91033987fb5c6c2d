package um

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind names one of the five terminating conditions a machine run can
// end in. Exactly one of these always explains why Run returned.
type Kind int

const (
	// NormalHalt means operator 7 executed. Not an error condition.
	NormalHalt Kind = iota
	MalformedImage
	InvalidInstruction
	InvalidOperation
	IOError
)

func (k Kind) String() string {
	switch k {
	case NormalHalt:
		return "normal halt"
	case MalformedImage:
		return "malformed image"
	case InvalidInstruction:
		return "invalid instruction"
	case InvalidOperation:
		return "invalid operation"
	case IOError:
		return "io error"
	default:
		return "unknown"
	}
}

// Fault is a terminating condition raised by the engine. Finger is the
// execution finger at the moment of failure; it is meaningless for
// MalformedImage, which is raised before the engine starts.
type Fault struct {
	Kind   Kind
	Finger int
	cause  error
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s at finger %d: %s", f.Kind, f.Finger, f.cause)
	}
	return fmt.Sprintf("%s at finger %d", f.Kind, f.Finger)
}

func (f *Fault) Unwrap() error { return f.cause }

func fault(kind Kind, finger int, cause error) *Fault {
	return &Fault{Kind: kind, Finger: finger, cause: cause}
}

func faultf(kind Kind, finger int, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Finger: finger, cause: errors.Errorf(format, args...)}
}
