package reveal

import "sync"

// Box is an element's vertical extent in document coordinates.
type Box struct {
	Top    float64
	Height float64
}

// Viewport is an Observer over a fixed layout and a scroll position. It
// delivers entries synchronously from Observe and Scroll.
type Viewport struct {
	mu       sync.Mutex
	height   float64
	scrollY  float64
	layout   func(Element) Box
	opts     Options
	callback func([]Entry)
	targets  []Element
}

// NewViewport creates a viewport of the given height. layout returns the box
// of each observed element.
func NewViewport(height float64, layout func(Element) Box) *Viewport {
	return &Viewport{height: height, layout: layout}
}

// Factory returns an ObserverFactory that hands out this viewport.
func (v *Viewport) Factory() ObserverFactory {
	return func(opts Options, callback func([]Entry)) (Observer, error) {
		v.mu.Lock()
		v.opts = opts
		v.callback = callback
		v.mu.Unlock()
		return v, nil
	}
}

// Observe starts watching el and reports its current intersection.
func (v *Viewport) Observe(el Element) {
	v.mu.Lock()
	for _, t := range v.targets {
		if t == el {
			v.mu.Unlock()
			return
		}
	}
	v.targets = append(v.targets, el)
	entry := v.entryLocked(el)
	cb := v.callback
	v.mu.Unlock()

	if cb != nil {
		cb([]Entry{entry})
	}
}

// Unobserve stops watching el.
func (v *Viewport) Unobserve(el Element) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, t := range v.targets {
		if t == el {
			v.targets = append(v.targets[:i], v.targets[i+1:]...)
			return
		}
	}
}

// Observed returns how many elements are still watched.
func (v *Viewport) Observed() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.targets)
}

// Scroll moves the viewport to y and reports every watched element.
func (v *Viewport) Scroll(y float64) {
	v.mu.Lock()
	v.scrollY = y
	entries := make([]Entry, 0, len(v.targets))
	for _, t := range v.targets {
		entries = append(entries, v.entryLocked(t))
	}
	cb := v.callback
	v.mu.Unlock()

	if cb != nil && len(entries) > 0 {
		cb(entries)
	}
}

func (v *Viewport) entryLocked(el Element) Entry {
	box := v.layout(el)
	top := v.scrollY - v.opts.RootMargin
	bottom := v.scrollY + v.height + v.opts.RootMargin

	overlap := min(bottom, box.Top+box.Height) - max(top, box.Top)
	if box.Height <= 0 {
		in := box.Top >= top && box.Top <= bottom
		ratio := 0.0
		if in {
			ratio = 1
		}
		return Entry{Target: el, Intersecting: in, Ratio: ratio}
	}
	if overlap < 0 {
		overlap = 0
	}
	ratio := overlap / box.Height
	return Entry{
		Target:       el,
		Intersecting: overlap > 0 && ratio >= v.opts.Threshold,
		Ratio:        ratio,
	}
}
