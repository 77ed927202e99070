package notify

import (
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	subscriberBuffer = 8
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = pongWait * 9 / 10
)

var _ interfaces.AlertPublisher = (*AlertFeed)(nil)

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// AlertFeed pushes every published movement alert to connected websocket
// clients. A client whose buffer is full is disconnected.
type AlertFeed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	closed   bool
}

// NewAlertFeed creates an empty feed
func NewAlertFeed() *AlertFeed {
	return &AlertFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Publish encodes alert once and queues it for every subscriber
func (f *AlertFeed) Publish(alert entities.MovementAlert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		logging.ErrorWithError(context.Background(), "failed to encode alert", err, nil)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for sub := range f.subs {
		select {
		case sub.send <- payload:
		default:
			f.removeLocked(sub)
		}
	}
}

// Subscribers returns the number of connected clients
func (f *AlertFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// ServeHTTP upgrades the request and streams alerts until the client leaves
func (f *AlertFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WarnWithError(r.Context(), "websocket upgrade failed", err, nil)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, subscriberBuffer)}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = conn.Close()
		return
	}
	f.subs[sub] = struct{}{}
	metrics.UpdateAlertSubscribers(len(f.subs))
	f.mu.Unlock()

	logging.Info(r.Context(), "alert subscriber connected", logging.Fields{
		logging.FieldRemoteIP: r.RemoteAddr,
	})

	go f.writePump(sub)
	f.readPump(sub)
}

// Close disconnects every subscriber and refuses new ones
func (f *AlertFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for sub := range f.subs {
		f.removeLocked(sub)
	}
}

func (f *AlertFeed) remove(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(sub)
}

func (f *AlertFeed) removeLocked(sub *subscriber) {
	if _, ok := f.subs[sub]; !ok {
		return
	}
	delete(f.subs, sub)
	close(sub.send)
	metrics.UpdateAlertSubscribers(len(f.subs))
}

// readPump discards client messages and notices disconnects
func (f *AlertFeed) readPump(sub *subscriber) {
	defer func() {
		f.remove(sub)
		_ = sub.conn.Close()
	}()

	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *AlertFeed) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
