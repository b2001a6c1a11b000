// Package stubserver is a development stand-in for the PesaFlow backend. It
// serves the endpoints the dashboard pipeline polls and a websocket event
// stream, with deterministic fixture data. Test scaffolding only; none of
// the real business logic lives here.
package stubserver

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/realtime"
)

// CustomersPartialPath serves paginated customer rows as HTML fragments.
const CustomersPartialPath = "/customers/partial/"

// PublishPath accepts events to push onto the websocket stream.
const PublishPath = "/api/v1/events/"

// Options configures the stub.
type Options struct {
	Hub *realtime.Hub
	// Stats seeds the counters; zero value gets a plausible fixture.
	Stats api.StatsSnapshot
	// Unread seeds the unread-notification count.
	Unread int
	// Pages is how many customer pages exist; PageSize rows each.
	Pages    int
	PageSize int
}

// Server is the stub backend.
type Server struct {
	app *fiber.App
	hub *realtime.Hub

	mu       sync.Mutex
	stats    api.StatsSnapshot
	unread   int
	pages    int
	pageSize int
}

// New builds the stub with its routes mounted.
func New(opts Options) *Server {
	if opts.Hub == nil {
		opts.Hub = realtime.NewHub()
	}
	if opts.Stats == (api.StatsSnapshot{}) {
		opts.Stats = api.StatsSnapshot{
			TotalCustomers:    128,
			TotalRevenue:      45230.50,
			SuccessRate:       96.4,
			PendingInvoices:   7,
			CompletedPayments: 412,
			FailedPayments:    15,
		}
	}
	if opts.Pages <= 0 {
		opts.Pages = 3
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		hub:      opts.Hub,
		stats:    opts.Stats,
		unread:   opts.Unread,
		pages:    opts.Pages,
		pageSize: opts.PageSize,
	}
	s.routes()
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until the app is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server and closes the event stream.
func (s *Server) Shutdown() error {
	s.hub.Close()
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Get(api.StatsPath, s.handleStats)
	s.app.Get(api.UnreadCountPath, s.handleUnreadCount)
	s.app.Get(CustomersPartialPath, s.handleCustomersPartial)
	s.app.Post(PublishPath, s.handlePublish)

	s.app.Use(realtime.DefaultEventsPath, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get(realtime.DefaultEventsPath, websocket.New(s.handleEvents))
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.stats)
}

func (s *Server) handleUnreadCount(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{"count": s.unread})
}

func (s *Server) handleCustomersPartial(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid page")
	}
	s.mu.Lock()
	pages, size := s.pages, s.pageSize
	s.mu.Unlock()
	if page > pages {
		return c.JSON(api.PageFragment{})
	}
	html := ""
	for i := 0; i < size; i++ {
		html += fmt.Sprintf(`<div class="customer-row">Customer %d</div>`, (page-1)*size+i+1)
	}
	return c.JSON(api.PageFragment{HTML: html, HasNext: page < pages})
}

type publishRequest struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// handlePublish pushes an event to every websocket subscriber and nudges
// the counters so pollers observe a change.
func (s *Server) handlePublish(c *fiber.Ctx) error {
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	kind := realtime.EventKind(req.Event)
	if !kind.Known() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown event kind "+req.Event)
	}
	s.mu.Lock()
	switch kind {
	case realtime.EventNewPayment:
		s.stats.CompletedPayments++
	case realtime.EventPaymentFailed:
		s.stats.FailedPayments++
	case realtime.EventNewNotification:
		s.unread++
	}
	s.mu.Unlock()
	s.hub.Publish(realtime.NewEvent(kind, req.Message))
	return c.SendStatus(fiber.StatusAccepted)
}

// eventConn is the slice of the websocket connection the event stream uses.
type eventConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	Close() error
}

func (s *Server) handleEvents(conn *websocket.Conn) {
	s.streamEvents(conn)
}

func (s *Server) streamEvents(conn eventConn) {
	events, cancel := s.hub.Subscribe()
	defer cancel()
	defer conn.Close()

	// Clients never send payloads; the read loop exists to notice a peer
	// close and release the subscription even when the stream is quiet.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
