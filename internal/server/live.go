package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/slideshow"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type  string  `json:"type"`  // next, prev, goto, key, hover, focus, swipe_start, swipe_end, swipe_cancel
	Index int     `json:"index"` // goto
	Key   string  `json:"key"`   // key
	On    bool    `json:"on"`    // hover, focus
	X     float64 `json:"x"`     // swipe_start, swipe_end
	Y     float64 `json:"y"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type      string           `json:"type"` // "state" or "error"
	SessionID string           `json:"session_id"`
	State     *slideshow.State `json:"state,omitempty"`
	Gesture   string           `json:"gesture,omitempty"`
	Handled   *bool            `json:"handled,omitempty"`
	Content   string           `json:"content,omitempty"`
}

// liveConn serializes writes: state pushes come from the autoplay timer as
// well as from the read loop.
type liveConn struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	logger    *log.Entry
}

func (c *liveConn) send(resp liveResponse) {
	resp.SessionID = c.sessionID
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.WithError(err).Debug("websocket write")
	}
}

func (c *liveConn) sendState(st slideshow.State) {
	c.send(liveResponse{Type: "state", State: &st})
}

func (c *liveConn) sendError(message string) {
	c.send(liveResponse{Type: "error", Content: message})
}

// handleLive drives one slideshow per connection. The query parameter
// banner=1 selects the banner's autoplay delay.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	slug := urlParam(r, "slug")
	projects, err := s.data.LoadProjects(r.Context())
	if err != nil {
		s.loadFailed(w, "projects", err)
		return
	}
	p, err := catalog.BySlug(projects, slug)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	delay := s.cfg.GalleryDelay
	if r.URL.Query().Get("banner") == "1" {
		delay = s.cfg.BannerDelay
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()

	lc := &liveConn{
		conn:      conn,
		sessionID: uuid.NewString(),
	}
	lc.logger = s.logger.WithFields(log.Fields{"session": lc.sessionID, "slug": slug})

	show, err := slideshow.New(slideshow.FromProject(*p), slideshow.Options{
		Autoplay:      true,
		ReducedMotion: s.cfg.ReducedMotion,
		Delay:         delay,
		Clock:         s.clock,
		OnChange:      lc.sendState,
	})
	if err != nil {
		lc.sendError(err.Error())
		return
	}
	defer show.Close()

	lc.logger.Debug("live slideshow opened")
	lc.sendState(show.State())
	show.Start()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				lc.logger.WithError(err).Warn("websocket read")
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			lc.sendError("invalid message format")
			continue
		}
		s.dispatchLive(lc, show, req)
	}
}

// dispatchLive applies one client message. Navigation is reported through
// the show's change callback; every other message is answered with the
// current state. Key messages are always answered so the client learns
// whether to suppress the browser default.
func (s *Server) dispatchLive(lc *liveConn, show *slideshow.Show, req liveRequest) {
	switch req.Type {
	case "next":
		show.Next()
	case "prev":
		show.Prev()
	case "goto":
		show.SetIndex(req.Index, true)
	case "key":
		handled := show.Key(req.Key)
		st := show.State()
		lc.send(liveResponse{Type: "state", State: &st, Handled: &handled})
	case "hover":
		show.Hover(req.On)
		lc.sendState(show.State())
	case "focus":
		show.Focus(req.On)
		lc.sendState(show.State())
	case "swipe_start":
		show.SwipeStart(slideshow.Point{X: req.X, Y: req.Y})
		lc.sendState(show.State())
	case "swipe_end":
		if g := show.SwipeEnd(slideshow.Point{X: req.X, Y: req.Y}); g == slideshow.GestureNone {
			st := show.State()
			lc.send(liveResponse{Type: "state", State: &st, Gesture: g.String()})
		}
	case "swipe_cancel":
		show.SwipeCancel()
		lc.sendState(show.State())
	default:
		lc.sendError("unknown message type: " + req.Type)
	}
}
