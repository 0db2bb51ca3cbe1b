package typesystem

import "fmt"

// FailureKind tags the failures the algebra produces.
type FailureKind int

const (
	MalformedShape      FailureKind = 0 // annotation or pattern the model cannot represent
	SizeMismatch        FailureKind = 1 // arity that cannot be satisfied
	ElementTypeMismatch FailureKind = 2 // position-specific element incompatibility
	IndexOutOfRange     FailureKind = 3 // literal index outside a statically-known window
)

// Failure is a typed, non-fatal diagnostic. The algebra never formats
// user-facing text beyond Error(); callers read Kind plus the structured
// fields to render their own messages. Operations that fail still yield an
// Unknown placeholder so analysis can continue.
type Failure interface {
	error
	Kind() FailureKind
}

// MalformedShapeError indicates a shape annotation or destructuring pattern
// that cannot be represented, e.g. two unpack markers in one annotation.
type MalformedShapeError struct {
	Reason string
}

func (e *MalformedShapeError) Kind() FailureKind { return MalformedShape }

func (e *MalformedShapeError) Error() string {
	return fmt.Sprintf("malformed shape: %s", e.Reason)
}

func NewMalformedShape(reason string) *MalformedShapeError {
	return &MalformedShapeError{Reason: reason}
}

// SizeMismatchError indicates an arity requirement that the source cannot
// meet. Actual is a lower bound when ActualOpen is set (the source has an
// open segment, so only its minimum length is known).
type SizeMismatchError struct {
	Required   int
	Actual     int
	ActualOpen bool
}

func (e *SizeMismatchError) Kind() FailureKind { return SizeMismatch }

func (e *SizeMismatchError) Error() string {
	if e.ActualOpen {
		return fmt.Sprintf("size mismatch: required %d, got at least %d", e.Required, e.Actual)
	}
	return fmt.Sprintf("size mismatch: required %d, got %d", e.Required, e.Actual)
}

func NewSizeMismatch(required, actual int, actualOpen bool) *SizeMismatchError {
	return &SizeMismatchError{Required: required, Actual: actual, ActualOpen: actualOpen}
}

// ElementTypeMismatchError indicates one element that failed the element
// assignability predicate. Position counts from the start; FromEnd marks
// positions counted from the end instead (trailing elements of open
// sources, where the from-start index is unknowable). A Position of -1
// with FromEnd unset means the incompatibility is not positional, e.g. no
// alternative of a union target accepts the source.
type ElementTypeMismatchError struct {
	Position int
	FromEnd  bool
	Source   Type
	Target   Type
}

func (e *ElementTypeMismatchError) Kind() FailureKind { return ElementTypeMismatch }

func (e *ElementTypeMismatchError) Error() string {
	if e.Position < 0 && !e.FromEnd {
		return fmt.Sprintf("type mismatch: %s is not assignable to %s", e.Source, e.Target)
	}
	pos := fmt.Sprintf("%d", e.Position)
	if e.FromEnd {
		pos = fmt.Sprintf("%d from the end", e.Position)
	}
	return fmt.Sprintf("element type mismatch at position %s: %s is not assignable to %s", pos, e.Source, e.Target)
}

func NewElementTypeMismatch(position int, src, dst Type) *ElementTypeMismatchError {
	return &ElementTypeMismatchError{Position: position, Source: src, Target: dst}
}

// IndexOutOfRangeError indicates a literal index outside the valid window
// of an exact shape. Receiver is the shape that rejected the index, which
// for union receivers identifies the failing alternative.
type IndexOutOfRangeError struct {
	Index    int
	Length   int
	Receiver Type
}

func (e *IndexOutOfRangeError) Kind() FailureKind { return IndexOutOfRange }

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d is out of range for %s (length %d)", e.Index, e.Receiver, e.Length)
}

func NewIndexOutOfRange(index, length int, receiver Type) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{Index: index, Length: length, Receiver: receiver}
}
