// Package pins allocates the design's inputs and outputs onto the caravel GPIO range.
package pins

import (
	"errors"
	"fmt"
)

// Bounds of the user-available GPIO pins, half-open.
const (
	FirstGPIO = 8
	EndGPIO   = 36
)

// ErrTooManyIOs is returned when the declared pins do not fit in [FirstGPIO, EndGPIO).
var ErrTooManyIOs = errors.New("too many IOs")

// Range is a half-open interval [Start, End) of GPIO indices.
type Range struct {
	Start int
	End   int
}

// Width is the number of pins in the range.
func (r Range) Width() int {
	return r.End - r.Start
}

// Last is the highest pin index in the range, as used in Verilog bit selects.
// For an empty range it is Start-1.
func (r Range) Last() int {
	return r.End - 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Allocation places the inputs first, immediately followed by the outputs.
type Allocation struct {
	In  Range
	Out Range
}

// Allocate computes the pin ranges for nIn inputs and nOut outputs.
func Allocate(nIn, nOut int) (Allocation, error) {
	if nIn < 0 || nOut < 0 {
		return Allocation{}, fmt.Errorf("pin counts must not be negative (inputs %d, outputs %d)", nIn, nOut)
	}
	in := Range{Start: FirstGPIO, End: FirstGPIO + nIn}
	out := Range{Start: in.End, End: in.End + nOut}
	if out.End > EndGPIO {
		return Allocation{}, fmt.Errorf("%w: %d inputs and %d outputs need GPIO up to %d, limit is %d",
			ErrTooManyIOs, nIn, nOut, out.End, EndGPIO)
	}
	return Allocation{In: in, Out: out}, nil
}
