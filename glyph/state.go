package glyph

// pathState is the explicit state machine driving one <contour>
// element's worth of parsing.
type pathState int

const (
	pathIdle pathState = iota
	pathInContour
	pathClosed
)

// contourBuilder accumulates points for a single <contour> and, at
// end_path, runs the validation rules for the contour grammar (off-curve
// run length, Move placement, trailing off-curves, smooth-on-off-curve).
type contourBuilder struct {
	state  pathState
	points []ContourPoint
}

func newContourBuilder() *contourBuilder {
	return &contourBuilder{state: pathIdle}
}

// beginPath transitions Idle -> InContour. Calling it twice without an
// intervening endPath is a programming error in the parser itself (the
// parser never does this; <contour> elements don't nest), so it panics
// rather than returning an error.
func (cb *contourBuilder) beginPath() {
	if cb.state != pathIdle {
		panic("glyph: beginPath called outside Idle state")
	}
	cb.state = pathInContour
}

// addPoint appends pt, or reports PenPathNotStarted / UnexpectedDrawing if
// called outside InContour.
func (cb *contourBuilder) addPoint(pt ContourPoint) *objectLibsError {
	switch cb.state {
	case pathIdle:
		return &objectLibsError{reason: ReasonPenPathNotStarted}
	case pathClosed:
		return &objectLibsError{reason: ReasonUnexpectedDrawing}
	}
	cb.points = append(cb.points, pt)
	return nil
}

// endPath transitions InContour -> Closed and validates the accumulated
// points, returning a Contour or an error reason.
func (cb *contourBuilder) endPath() (Contour, string) {
	if cb.state == pathIdle {
		return Contour{}, ReasonPenPathNotStarted
	}
	cb.state = pathClosed
	if reason := validatePoints(cb.points); reason != "" {
		return Contour{}, reason
	}
	return Contour{Points: cb.points}, ""
}

// validatePoints enforces the contour grammar:
//   - Move may appear only as the first point of an open contour.
//   - a run of off-curves must be terminated by Curve or QCurve.
//   - a run longer than 2 preceding a Curve/QCurve fails TooManyOffCurves.
//   - an off-curve followed by a non-curve on-curve fails
//     UnexpectedPointAfterOffCurve.
//   - an open contour ending mid-run fails TrailingOffCurves.
//   - smooth=true on an OffCurve fails UnexpectedSmooth.
func validatePoints(points []ContourPoint) string {
	for i, p := range points {
		if p.Type == OffCurve && p.Smooth {
			return ReasonUnexpectedSmooth
		}
		if p.Type == Move && i != 0 {
			return ReasonUnexpectedMove
		}
	}
	if len(points) == 0 {
		return ""
	}
	open := points[0].Type == Move
	run := 0
	for i, p := range points {
		if i == 0 && open {
			continue
		}
		switch p.Type {
		case OffCurve:
			run++
			if run > 2 {
				return ReasonTooManyOffCurves
			}
		case Curve, QCurve:
			run = 0
		case Line, Move:
			if run > 0 {
				return ReasonUnexpectedPointAfterOffCurve
			}
		}
	}
	if run > 0 {
		// A closed contour's trailing off-curve run wraps onto the first
		// point (its implicit closing curve); an open contour has no
		// wrap-around point to close onto.
		if open {
			return ReasonTrailingOffCurves
		}
		for _, p := range points {
			if p.Type != OffCurve {
				if p.Type != Curve && p.Type != QCurve {
					return ReasonUnexpectedPointAfterOffCurve
				}
				break
			}
			run++
			if run > 2 {
				return ReasonTooManyOffCurves
			}
		}
	}
	return ""
}
