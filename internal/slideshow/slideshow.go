// Package slideshow implements the project image slideshow: a wrapping index
// over deduplicated slides with autoplay, pause/resume, swipe and keyboard
// navigation.
package slideshow

import (
	"errors"
	"sync"
	"time"

	"github.com/lmesias/folio/internal/models"
)

// Autoplay delays used by the detail page.
const (
	GalleryDelay = 4500 * time.Millisecond
	BannerDelay  = 4200 * time.Millisecond
)

// FallbackAlt is the alt text used when neither the slide nor the project has one.
const FallbackAlt = "Project image"

// ErrNoSlides is returned by New when there is nothing to show.
var ErrNoSlides = errors.New("slideshow: no slides")

// Slide is one image of the slideshow.
type Slide struct {
	Image   string `json:"image"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// FromProject returns the project's hero image followed by its gallery,
// skipping empty and repeated images.
func FromProject(p models.Project) []Slide {
	alt := p.Title
	if alt == "" {
		alt = FallbackAlt
	}

	var slides []Slide
	seen := make(map[string]bool)
	if p.Image != "" {
		slides = append(slides, Slide{Image: p.Image, Alt: alt})
		seen[p.Image] = true
	}
	for _, g := range p.Gallery {
		if g.Image == "" || seen[g.Image] {
			continue
		}
		seen[g.Image] = true
		s := Slide{Image: g.Image, Alt: g.Alt, Caption: g.Caption}
		if s.Alt == "" {
			s.Alt = alt
		}
		slides = append(slides, s)
	}
	return slides
}

// Options configures a Show.
type Options struct {
	// Autoplay requests timed advancing. It only takes effect with more than
	// one slide and when ReducedMotion is false.
	Autoplay      bool
	ReducedMotion bool
	Delay         time.Duration
	Clock         Clock
	// OnChange is called after every index change, outside the show's lock.
	OnChange func(State)
}

// State is a snapshot of a Show.
type State struct {
	Index     int   `json:"index"`
	Count     int   `json:"count"`
	Slide     Slide `json:"slide"`
	Paused    bool  `json:"paused"`
	Autoplay  bool  `json:"autoplay"`
	Scheduled bool  `json:"scheduled"`
}

// Show is one slideshow instance. It is safe for concurrent use; timer
// callbacks and user input are serialized by an internal mutex.
type Show struct {
	mu       sync.Mutex
	slides   []Slide
	idx      int
	paused   bool
	closed   bool
	timer    Timer
	gen      uint64
	autoplay bool
	delay    time.Duration
	clock    Clock
	onChange func(State)

	swiping    bool
	swipeStart Point
	swipeAt    time.Time
}

// New creates a Show positioned on the first slide. Slides with no image are
// dropped. Autoplay does not begin until Start is called.
func New(slides []Slide, opts Options) (*Show, error) {
	items := make([]Slide, 0, len(slides))
	for _, s := range slides {
		if s.Image != "" {
			items = append(items, s)
		}
	}
	if len(items) == 0 {
		return nil, ErrNoSlides
	}

	s := &Show{
		slides:   items,
		autoplay: opts.Autoplay && !opts.ReducedMotion && len(items) > 1,
		delay:    opts.Delay,
		clock:    opts.Clock,
		onChange: opts.OnChange,
	}
	if s.delay <= 0 {
		s.delay = GalleryDelay
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	return s, nil
}

// Slides returns the slides in display order.
func (s *Show) Slides() []Slide {
	return append([]Slide(nil), s.slides...)
}

// Len returns the number of slides.
func (s *Show) Len() int { return len(s.slides) }

// State returns a snapshot of the current state.
func (s *Show) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Show) stateLocked() State {
	return State{
		Index:     s.idx,
		Count:     len(s.slides),
		Slide:     s.slides[s.idx],
		Paused:    s.paused,
		Autoplay:  s.autoplay,
		Scheduled: s.timer != nil,
	}
}

// Start schedules the first autoplay advance.
func (s *Show) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked()
}

// Close cancels any pending advance. A closed show never schedules again.
func (s *Show) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}

// Wrap maps any integer onto [0, n).
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// SetIndex moves to slide i, wrapping modulo the slide count. A user action
// restarts the autoplay timer from now.
func (s *Show) SetIndex(i int, user bool) State {
	s.mu.Lock()
	s.idx = Wrap(i, len(s.slides))
	if user {
		s.scheduleLocked()
	}
	st := s.stateLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(st)
	}
	return st
}

// Next moves one slide forward as a user action.
func (s *Show) Next() State { return s.step(1) }

// Prev moves one slide back as a user action.
func (s *Show) Prev() State { return s.step(-1) }

func (s *Show) step(delta int) State {
	s.mu.Lock()
	i := s.idx + delta
	s.mu.Unlock()
	return s.SetIndex(i, true)
}

// Pause cancels the pending advance without changing position.
func (s *Show) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	s.stopLocked()
}

// Resume clears the pause and schedules the next advance a full delay from now.
func (s *Show) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
	s.scheduleLocked()
}

// Hover pauses while a pointer is over the stage.
func (s *Show) Hover(inside bool) {
	if inside {
		s.Pause()
	} else {
		s.Resume()
	}
}

// Focus pauses while keyboard focus is within the widget.
func (s *Show) Focus(within bool) {
	if within {
		s.Pause()
	} else {
		s.Resume()
	}
}

// Key handles a key press while the widget has focus. It reports whether the
// key was consumed, in which case the default scroll must be suppressed.
func (s *Show) Key(key string) bool {
	switch key {
	case "ArrowLeft":
		s.Prev()
		return true
	case "ArrowRight":
		s.Next()
		return true
	}
	return false
}

// SwipeStart records the start of a press and pauses autoplay. Presses are
// ignored when there is only one slide.
func (s *Show) SwipeStart(p Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.slides) <= 1 {
		return false
	}
	s.swiping = true
	s.swipeStart = p
	s.swipeAt = s.clock.Now()
	s.paused = true
	s.stopLocked()
	return true
}

// SwipeEnd classifies the press that ended at p. A swipe navigates one slide
// and leaves autoplay paused until the next hover, focus or cancel event
// resumes it; anything else resumes autoplay in place.
func (s *Show) SwipeEnd(p Point) Gesture {
	s.mu.Lock()
	if !s.swiping {
		s.mu.Unlock()
		return GestureNone
	}
	s.swiping = false
	g := Classify(s.swipeStart, p, s.clock.Now().Sub(s.swipeAt))
	if g == GestureNone {
		s.paused = false
		s.scheduleLocked()
		s.mu.Unlock()
		return g
	}
	i := s.idx + 1
	if g == GesturePrev {
		i = s.idx - 1
	}
	s.mu.Unlock()

	s.SetIndex(i, true)
	return g
}

// SwipeCancel abandons an in-progress press and resumes autoplay.
func (s *Show) SwipeCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swiping = false
	s.paused = false
	s.scheduleLocked()
}

// scheduleLocked replaces any pending advance with a new one. Caller holds s.mu.
func (s *Show) scheduleLocked() {
	if !s.autoplay || s.paused || s.closed {
		return
	}
	s.stopLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() { s.advance(gen) })
}

// stopLocked cancels the pending advance. Bumping gen also invalidates a
// callback that already fired but has not yet taken the lock.
func (s *Show) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Show) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.paused || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.idx = Wrap(s.idx+1, len(s.slides))
	s.scheduleLocked()
	st := s.stateLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}
