package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Session is the single authenticated connection to the game server. Every
// gateway shares one instance; Reconnect swaps the underlying connection in
// place, so holders never need to exchange their handle.
//
// Calls are serialized: the bot protocol is strict request/response, one
// frame in flight at a time.
type Session struct {
	url      string
	login    string
	password string

	mu     sync.Mutex // guards conn and serializes request/response pairs
	conn   *websocket.Conn
	nextID uint64
}

type request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *wireError      `json:"error,omitempty"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Dial connects and authenticates a new session.
func Dial(ctx context.Context, url, login, password string) (*Session, error) {
	s := &Session{url: url, login: login, password: password}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connectLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) connectLocked(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w: %w", s.url, ErrDisconnected, err)
	}
	s.conn = conn

	var ok struct {
		PlayerID uint64 `json:"playerId"`
	}
	if err := s.callLocked(ctx, "session.login", map[string]string{
		"login":    s.login,
		"password": s.password,
	}, &ok); err != nil {
		conn.Close()
		s.conn = nil
		return fmt.Errorf("login: %w", err)
	}

	slog.Info("Session established", slog.Uint64("player", ok.PlayerID))
	return nil
}

// Call performs one request/response round trip. Transport failures close
// the connection and come back wrapped in ErrDisconnected; server-side
// rejections come back as *BusinessError.
func (s *Session) Call(ctx context.Context, method string, params, result any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callLocked(ctx, method, params, result)
}

func (s *Session) callLocked(ctx context.Context, method string, params, result any) error {
	if s.conn == nil {
		return fmt.Errorf("call %s: %w", method, ErrDisconnected)
	}

	s.nextID++
	req := request{ID: s.nextID, Method: method, Params: params}

	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
		s.conn.SetReadDeadline(deadline)
	} else {
		s.conn.SetWriteDeadline(time.Time{})
		s.conn.SetReadDeadline(time.Time{})
	}

	if err := s.conn.WriteJSON(req); err != nil {
		s.closeLocked()
		return fmt.Errorf("call %s: %w: %w", method, ErrDisconnected, err)
	}

	var resp response
	for {
		if err := s.conn.ReadJSON(&resp); err != nil {
			s.closeLocked()
			return fmt.Errorf("call %s: %w: %w", method, ErrDisconnected, err)
		}
		if resp.ID == req.ID {
			break
		}
		// Stale reply from an interrupted earlier call; skip it.
	}

	if resp.Error != nil {
		return fmt.Errorf("call %s: %w", method, &BusinessError{
			Code:    resp.Error.Code,
			Message: resp.Error.Message,
		})
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("call %s: decoding result: %w", method, err)
		}
	}
	return nil
}

// Reconnect drops the current connection and establishes a fresh one. Safe
// to call while other goroutines use the session; they block until the swap
// completes.
func (s *Session) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked()
	return s.connectLocked(ctx)
}

// Close shuts the connection down for good.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}

func (s *Session) closeLocked() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
