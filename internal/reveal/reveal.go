// Package reveal marks elements as revealed the first time they enter the
// viewport.
package reveal

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Default observation options: elements trigger 40px before they scroll into
// view, once 8% of them is visible.
const (
	DefaultRootMargin = 40.0
	DefaultThreshold  = 0.08
)

// Element is something that can be bound to the controller and revealed.
type Element interface {
	// Bound reports whether the element was already registered.
	Bound() bool
	Bind()
	Reveal()
}

// Entry is one observation delivered by an Observer.
type Entry struct {
	Target       Element
	Intersecting bool
	Ratio        float64
}

// Options configure how an Observer decides intersection.
type Options struct {
	RootMargin float64
	Threshold  float64
}

// Observer watches elements and reports intersection changes.
type Observer interface {
	Observe(Element)
	Unobserve(Element)
}

// ObserverFactory creates the controller's observer. A nil factory means the
// environment cannot observe the viewport.
type ObserverFactory func(opts Options, callback func([]Entry)) (Observer, error)

// Controller binds elements once and reveals them when they intersect.
// The observer is created on the first Refresh that has work to do.
type Controller struct {
	mu       sync.Mutex
	factory  ObserverFactory
	opts     Options
	observer Observer
	broken   bool
	logger   *log.Logger
}

// NewController creates a controller using factory to observe elements.
func NewController(factory ObserverFactory, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Controller{
		factory: factory,
		opts:    Options{RootMargin: DefaultRootMargin, Threshold: DefaultThreshold},
		logger:  logger,
	}
}

// Refresh registers every element that is not yet bound. Without a working
// observer the elements are revealed immediately.
func (c *Controller) Refresh(elems []Element) {
	var pending []Element
	for _, el := range elems {
		if !el.Bound() {
			pending = append(pending, el)
		}
	}
	if len(pending) == 0 {
		return
	}

	obs := c.ensureObserver()
	if obs == nil {
		for _, el := range pending {
			el.Bind()
			el.Reveal()
		}
		return
	}
	for _, el := range pending {
		el.Bind()
		obs.Observe(el)
	}
}

func (c *Controller) ensureObserver() Observer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.observer != nil || c.broken || c.factory == nil {
		return c.observer
	}
	obs, err := c.factory(c.opts, c.handle)
	if err != nil {
		c.logger.WithError(err).Warn("reveal: observer unavailable, showing content immediately")
		c.broken = true
		return nil
	}
	c.observer = obs
	return obs
}

func (c *Controller) handle(entries []Entry) {
	c.mu.Lock()
	obs := c.observer
	c.mu.Unlock()

	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		e.Target.Reveal()
		if obs != nil {
			obs.Unobserve(e.Target)
		}
	}
}
