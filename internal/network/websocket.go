package network

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/logger"
)

// DialConfig configures a websocket connection.
type DialConfig struct {
	URL        string
	ID         string
	Codec      Codec
	Retries    int
	RetryDelay time.Duration
	InboxSize  int
}

// WSChannel is a Channel over a websocket connection. A reader goroutine
// queues inbound frames; Poll dispatches them on the caller's goroutine.
type WSChannel struct {
	id    string
	conn  *websocket.Conn
	codec Codec
	d     dispatcher

	writeMu sync.Mutex
	inbox   chan Message
	done    chan struct{}

	errMu sync.Mutex
	err   error

	closeOnce sync.Once
}

// Dial connects to the server, retrying until ctx expires or retries run out.
func Dial(ctx context.Context, cfg DialConfig) (*WSChannel, error) {
	if !strings.HasPrefix(cfg.URL, "ws://") && !strings.HasPrefix(cfg.URL, "wss://") {
		return nil, fmt.Errorf("invalid ws url: %s", cfg.URL)
	}
	if cfg.Codec == nil {
		cfg.Codec = JSONCodec{}
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 256
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}

	conn, err := dialWithRetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.URL, err)
	}

	c := &WSChannel{
		id:    cfg.ID,
		conn:  conn,
		codec: cfg.Codec,
		d:     newDispatcher(),
		inbox: make(chan Message, cfg.InboxSize),
		done:  make(chan struct{}),
	}
	go c.readLoop()

	logger.Info("connected to server",
		zap.String("url", cfg.URL),
		zap.String("id", cfg.ID),
		zap.String("codec", cfg.Codec.Name()))
	return c, nil
}

func dialWithRetry(ctx context.Context, cfg DialConfig) (*websocket.Conn, error) {
	var lastErr error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Debug("dial failed", zap.Int("attempt", attempt+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}
	return nil, lastErr
}

func (c *WSChannel) readLoop() {
	defer close(c.inbox)
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.setErr(err)
			return
		}
		event, raw, err := c.codec.DecodeEnvelope(frame)
		if err != nil {
			logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		select {
		case c.inbox <- Message{Event: event, Payload: raw, codec: c.codec}:
		case <-c.done:
			return
		}
	}
}

func (c *WSChannel) setErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err != nil {
		return
	}
	select {
	case <-c.done:
		c.err = ErrClosed
		return
	default:
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.err = fmt.Errorf("%w: %v", ErrServerClosed, err)
		logger.Info("server closed the connection", zap.Error(err))
		return
	}
	c.err = err
	logger.Warn("connection lost", zap.Error(err))
}

// Err returns the error that stopped the reader, if any. Messages read
// before the error stay queued for Poll.
func (c *WSChannel) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *WSChannel) ID() string { return c.id }

func (c *WSChannel) On(event string, handler Handler) {
	c.d.on(event, handler)
}

// Emit writes one frame. It does not wait for any acknowledgement.
func (c *WSChannel) Emit(event string, payload any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	frame, err := c.codec.EncodeEnvelope(event, payload)
	if err != nil {
		return err
	}
	msgType := websocket.TextMessage
	if c.codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(msgType, frame); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	return nil
}

func (c *WSChannel) Poll() int {
	n := 0
	for {
		select {
		case msg, ok := <-c.inbox:
			if !ok {
				return n
			}
			c.d.dispatch(msg)
			n++
		default:
			return n
		}
	}
}

// Close sends a close frame and shuts the connection down.
func (c *WSChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}
