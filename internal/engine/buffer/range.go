package buffer

import "fmt"

// Range is a half-open byte range [Start, End) in the buffer.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the range's length in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}
