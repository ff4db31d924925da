package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// sendBuffer bounds how far a slow subscriber may fall behind
	// before it is dropped.
	sendBuffer = 64

	writeWait    = 10 * time.Second
	maxReadLimit = 512
)

// Subscriber is one live connection receiving change events. Delivery
// goes through a buffered channel drained by WritePump, so a slow
// socket never blocks the publisher.
type Subscriber struct {
	conn *websocket.Conn
	send chan []byte
	log  zerolog.Logger

	closeOnce sync.Once
}

// NewSubscriber wraps an upgraded connection.
func NewSubscriber(conn *websocket.Conn, log zerolog.Logger) *Subscriber {
	return &Subscriber{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  log.With().Str("component", "subscriber").Logger(),
	}
}

// enqueue hands a serialized payload to the subscriber without
// blocking. Returns false when the buffer is full or the subscriber is
// closed; the caller treats that as a dead subscriber.
func (s *Subscriber) enqueue(payload []byte) (ok bool) {
	defer func() {
		// Send on a closed channel means the subscriber was
		// unregistered concurrently; report it as not delivered.
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

// close releases the send channel. Safe to call more than once.
func (s *Subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.send)
	})
}

// WritePump drains the send channel onto the socket until the channel
// closes or a write fails, then closes the connection.
func (s *Subscriber) WritePump() {
	defer s.conn.Close()
	for payload := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.log.Debug().Err(err).Msg("Write failed, dropping subscriber")
			return
		}
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump consumes inbound frames (subscribers only listen; anything
// they send is discarded) until the peer goes away, then calls
// unregister.
func (s *Subscriber) ReadPump(unregister func(*Subscriber)) {
	defer unregister(s)
	s.conn.SetReadLimit(maxReadLimit)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("Unexpected close")
			}
			return
		}
	}
}
