// Package transit streams the current planetary readings to WebSocket
// clients: the live positions of the 13 chart bodies mapped onto the
// mandala, refreshed on a fixed interval.
package transit

import (
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"humandesign/internal/chart"
	"humandesign/internal/domain"
	"humandesign/internal/ephemeris"
	"humandesign/internal/mandala"
	"humandesign/internal/observability"
)

// Snapshot is one broadcast frame: all 13 bodies at a single instant.
type Snapshot struct {
	Timestamp     string               `json:"timestamp"` // RFC3339 UTC
	JD            float64              `json:"jd"`
	Readings      []domain.BodyReading `json:"readings"`
	PrecisionMode domain.PrecisionMode `json:"precision_mode"`
}

// Config configures broadcast behavior.
type Config struct {
	// Interval between recomputed snapshots.
	Interval time.Duration
	// PingInterval is the interval for ping frames.
	PingInterval time.Duration
	// WriteTimeout bounds each client write.
	WriteTimeout time.Duration
}

// DefaultConfig returns default broadcast configuration.
func DefaultConfig() Config {
	return Config{
		Interval:     60 * time.Second,
		PingInterval: 30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// client wraps a connection with its write lock. gorilla/websocket allows
// only one concurrent writer per connection, and the registration snapshot
// runs on the handler goroutine while broadcasts and pings run on the loop
// goroutine.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Broadcaster computes transit snapshots and fans them out to connected
// WebSocket clients. New clients receive a snapshot immediately.
type Broadcaster struct {
	provider  ephemeris.Provider
	precision domain.PrecisionMode
	config    Config
	logger    *log.Logger
	clock     func() time.Time
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*client

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewBroadcaster creates a broadcaster. provider may be nil for the
// analytic engine; config zero values fall back to defaults.
func NewBroadcaster(provider ephemeris.Provider, precision domain.PrecisionMode, config Config, logger *log.Logger) *Broadcaster {
	if provider == nil {
		provider = ephemeris.NewAnalyticProvider()
	}
	def := DefaultConfig()
	if config.Interval <= 0 {
		config.Interval = def.Interval
	}
	if config.PingInterval <= 0 {
		config.PingInterval = def.PingInterval
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = def.WriteTimeout
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[transit] ", log.LstdFlags)
	}
	return &Broadcaster{
		provider:  provider,
		precision: precision,
		config:    config,
		logger:    logger,
		clock:     time.Now,
		clients:   make(map[*websocket.Conn]*client),
		done:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			// The HTTP layer already applies CORS; accept any origin here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start launches the broadcast loop.
func (b *Broadcaster) Start() {
	b.wg.Add(1)
	go b.loop()
}

// Stop closes all client connections and stops the loop.
func (b *Broadcaster) Stop() {
	b.closeOnce.Do(func() { close(b.done) })

	b.mu.Lock()
	for conn := range b.clients {
		conn.Close()
	}
	b.clients = make(map[*websocket.Conn]*client)
	b.mu.Unlock()
	observability.SetTransitClients(0)

	b.wg.Wait()
}

// HandleWS upgrades the request and registers the client.
func (b *Broadcaster) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Printf("upgrade failed: %v", err)
		return
	}

	c := b.register(conn)

	// Immediate snapshot so the client does not wait a full interval
	snap := b.snapshot(b.clock())
	b.send(c, snap)

	// Reader drains control frames and detects disconnect
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer b.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Snapshot computes the current transit frame without broadcasting it.
func (b *Broadcaster) Snapshot() Snapshot {
	return b.snapshot(b.clock())
}

func (b *Broadcaster) loop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.config.Interval)
	defer ticker.Stop()
	ping := time.NewTicker(b.config.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-b.done:
			return
		case now := <-ticker.C:
			b.broadcast(b.snapshot(now))
		case <-ping.C:
			b.pingAll()
		}
	}
}

// snapshot maps every body's current position. Bodies the provider cannot
// place degrade to the deterministic hash reading, same as chart building.
func (b *Broadcaster) snapshot(now time.Time) Snapshot {
	utc := now.UTC()
	jd := ephemeris.JulianDay(utc.Year(), int(utc.Month()), utc.Day(),
		float64(utc.Hour())+float64(utc.Minute())/60.0+float64(utc.Second())/3600.0)
	seedDate := utc.Format("2006-01-02-15-04")

	readings := make([]domain.BodyReading, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		base, antipodal := body.BaseBody()
		lon, speed, err := ephemeris.LongitudeAndSpeed(b.provider, jd, base)
		if err != nil {
			b.logger.Printf("transit position failed for %s: %v", body, err)
			readings = append(readings, chart.FallbackReading(seedDate, body, true))
			continue
		}
		if antipodal {
			lon = ephemeris.Normalize360(lon + 180.0)
			speed = -speed
		}

		gate, line := mandala.MapLongitude(lon)
		r := domain.BodyReading{
			Body:      body,
			Gate:      gate,
			Line:      line,
			Sign:      mandala.GateSign(gate),
			Longitude: lon,
			Speed:     speed,
			Zodiac:    mandala.Zodiac(lon),
			Arrow:     mandala.DignityArrow(speed, line),
			Source:    domain.SourceEphemeris,
		}
		r.GateLine = r.Label()
		readings = append(readings, r)
	}

	return Snapshot{
		Timestamp:     utc.Format(time.RFC3339),
		JD:            jd,
		Readings:      readings,
		PrecisionMode: b.precision,
	}
}

func (b *Broadcaster) broadcast(snap Snapshot) {
	for _, c := range b.snapshotClients() {
		b.send(c, snap)
	}
}

func (b *Broadcaster) send(c *client, snap Snapshot) {
	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
	err := c.conn.WriteJSON(snap)
	c.writeMu.Unlock()
	if err != nil {
		b.logger.Printf("client write failed, dropping: %v", err)
		b.unregister(c.conn)
	}
}

func (b *Broadcaster) pingAll() {
	for _, c := range b.snapshotClients() {
		c.writeMu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
		err := c.conn.WriteMessage(websocket.PingMessage, nil)
		c.writeMu.Unlock()
		if err != nil {
			b.unregister(c.conn)
		}
	}
}

func (b *Broadcaster) snapshotClients() []*client {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		out = append(out, c)
	}
	return out
}

func (b *Broadcaster) register(conn *websocket.Conn) *client {
	c := &client{conn: conn}
	b.mu.Lock()
	b.clients[conn] = c
	n := len(b.clients)
	b.mu.Unlock()
	observability.SetTransitClients(n)
	return c
}

func (b *Broadcaster) unregister(conn *websocket.Conn) {
	b.mu.Lock()
	_, present := b.clients[conn]
	delete(b.clients, conn)
	n := len(b.clients)
	b.mu.Unlock()
	if present {
		conn.Close()
	}
	observability.SetTransitClients(n)
}
