package slideshow

import (
	"math"
	"time"
)

// Swipe thresholds, in CSS pixels.
const (
	SwipeMinX        = 44.0
	SwipeMaxY        = 60.0
	SwipeDominance   = 1.2
	SwipeMaxDuration = 1200 * time.Millisecond
)

// Point is a screen coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gesture is the outcome of classifying a press.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureNext
	GesturePrev
)

func (g Gesture) String() string {
	switch g {
	case GestureNext:
		return "next"
	case GesturePrev:
		return "prev"
	default:
		return "none"
	}
}

// Classify decides whether a press from start to end lasting elapsed is a
// horizontal swipe. A leftward swipe moves to the next slide.
func Classify(start, end Point, elapsed time.Duration) Gesture {
	dx := end.X - start.X
	dy := end.Y - start.Y
	adx := math.Abs(dx)
	ady := math.Abs(dy)

	if ady > SwipeMaxY {
		return GestureNone
	}
	// Long presses are scrolls or drags.
	if elapsed > SwipeMaxDuration {
		return GestureNone
	}
	if adx >= SwipeMinX && adx > ady*SwipeDominance {
		if dx < 0 {
			return GestureNext
		}
		return GesturePrev
	}
	return GestureNone
}
