package watch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/status"
)

// Stream yields snapshots until closed.
type Stream interface {
	Next() (status.Snapshot, error)
	Close() error
}

// Dialer opens a Stream to the display at addr (host:port).
type Dialer func(ctx context.Context, addr string) (Stream, error)

// FramesURL returns the websocket URL of the display at addr.
func FramesURL(addr string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/api/v1/frames/ws"}
	return u.String()
}

// DialWebsocket is the Dialer used against real displays.
func DialWebsocket(ctx context.Context, addr string) (Stream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, FramesURL(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &wsStream{conn: conn}, nil
}

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) Next() (status.Snapshot, error) {
	var snap status.Snapshot
	err := s.conn.ReadJSON(&snap)
	return snap, err
}

func (s *wsStream) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}
