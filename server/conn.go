package server

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pixnet/pixnet/category"
	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/frame"
	"github.com/pixnet/pixnet/session"
)

// connHandler owns one TCP connection end to end: reading wire messages,
// driving the connection's Session state machine, writing replies, and
// routing forwarded client messages through the category interpreter
// (spec.md §5: a session is driven by exactly one goroutine).
//
// Only serve's goroutine ever touches sess or bw. Other goroutines (the
// server's broadcast path on a page update) hand messages to outCh instead
// of writing directly, so every outbound write is serialized through the
// one goroutine that owns this connection (spec.md §5, SPEC_FULL.md
// §4.6: "outbound writes serialized through a per-session channel").
type connHandler struct {
	conn    net.Conn
	br      *bufio.Reader
	bw      *bufio.Writer
	sess    *session.Session
	interp  *category.Interpreter
	limiter *tokenBucket
	log     *slog.Logger
	srv     *Server

	outCh     chan frame.Message
	done      chan struct{}
	closeOnce sync.Once
}

func newConnHandler(srv *Server, conn net.Conn) (*connHandler, error) {
	sess, err := session.New(
		session.WithKeepaliveIdle(srv.keepaliveIdle),
		session.WithKeepaliveTimeout(srv.keepaliveTimeout),
	)
	if err != nil {
		return nil, err
	}

	return &connHandler{
		conn:    conn,
		br:      bufio.NewReader(conn),
		bw:      bufio.NewWriter(conn),
		sess:    sess,
		interp:  category.NewInterpreter(nil),
		limiter: newTokenBucket(srv.rateLimit, nil),
		log:     srv.log.With("component", "conn", "remote", conn.RemoteAddr().String()),
		srv:     srv,
		outCh:   make(chan frame.Message, 32),
		done:    make(chan struct{}),
	}, nil
}

// serve is the connection's single driving goroutine (spec.md §5: "a
// session is driven by exactly one goroutine"). It owns h.sess and h.bw
// exclusively: a background goroutine only ever decodes frames off the
// wire and hands them over a channel, never touching session state or the
// writer directly, so there is exactly one writer of Session fields and
// one caller of h.write for the lifetime of the connection (spec.md §5,
// SPEC_FULL.md §4.6: "outbound writes serialized through a per-session
// channel").
func (h *connHandler) serve() {
	defer h.close()

	msgCh := make(chan frame.Message)
	errCh := make(chan error, 1)
	go h.readLoop(msgCh, errCh, h.done)

	interval := h.srv.keepaliveIdle / 4
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-msgCh:
			if !h.limiter.Allow() {
				h.writeAndClose(errs.RateLimited)

				return
			}

			if err := h.handleInbound(msg); err != nil {
				return
			}

		case err := <-errCh:
			if !errors.Is(err, io.EOF) {
				h.log.Info("read error, closing connection", "err", err)
			}

			return

		case now := <-ticker.C:
			if !h.tick(now) {
				return
			}

		case m := <-h.outCh:
			if err := h.write(m); err != nil {
				return
			}
		}
	}
}

// readLoop decodes frames off the wire and hands them to serve over msgCh.
// It never reads or writes h.sess or h.bw, so it can run concurrently with
// serve's own session/writer access without a race. done is closed by
// serve on return so a frame decoded after serve has already given up
// doesn't block this goroutine forever.
func (h *connHandler) readLoop(msgCh chan<- frame.Message, errCh chan<- error, done <-chan struct{}) {
	for {
		h.conn.SetReadDeadline(time.Now().Add(h.srv.keepaliveIdle + h.srv.keepaliveTimeout + 5*time.Second))

		msg, err := readMessage(h.br, h.srv.maxFrameSize)
		if err != nil {
			select {
			case errCh <- err:
			case <-done:
			}

			return
		}

		select {
		case msgCh <- msg:
		case <-done:
			return
		}
	}
}

// tick drives the keepalive timer for one ticker firing (spec.md §4.4),
// returning false when the session should close.
func (h *connHandler) tick(now time.Time) bool {
	out, err := h.sess.Tick(now)
	for _, m := range out {
		if werr := h.write(m); werr != nil {
			return false
		}
	}
	if err != nil {
		h.log.Info("keepalive timeout", "err", err)
		h.srv.sessions.remove(h.sess.SessionID)

		return false
	}

	return true
}

func (h *connHandler) handleInbound(msg frame.Message) error {
	out, forward, err := h.sess.HandleInbound(msg, time.Now())
	for _, m := range out {
		if werr := h.write(m); werr != nil {
			return werr
		}
	}

	if ack, ok := anyOf[*frame.Ack](out); ok {
		h.srv.sessions.put(ack.SessionID, h)
		if h.srv.CurrentPage() != nil {
			if rf := h.srv.renderFrameFor(h.srv.CurrentPage(), 0); rf != nil {
				_ = h.sendPage(rf)
			}
		}
	}

	if forward != nil {
		h.handleForward(forward)
	}

	if err != nil {
		h.log.Info("session closed", "err", err)
		h.srv.sessions.remove(h.sess.SessionID)

		return err
	}

	return nil
}

func anyOf[T any](msgs []frame.Message) (T, bool) {
	var zero T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}

	return zero, false
}

// handleForward routes a client message the session already validated
// (sequence, session id) through the category interpreter when it carries
// pixel coordinates, so EmitEvent debounce and DragZone/DropZone gesture
// state stay authoritative on the server (spec.md §4.5, §9).
func (h *connHandler) handleForward(msg frame.Message) {
	page := h.srv.CurrentPage()
	if page == nil {
		return
	}

	switch m := msg.(type) {
	case *frame.Event:
		action := category.ActionClick
		if m.EventType == 0 {
			action = category.ActionHover
		}
		if _, _, err := h.interp.Resolve(page, int(m.MouseX), int(m.MouseY), action); err != nil {
			h.log.Debug("category resolve failed", "err", err)
		}

	case *frame.DragUpdate:
		action := dragAction(m.EventType)
		if _, _, err := h.interp.Resolve(page, int(m.MouseX), int(m.MouseY), action); err != nil {
			h.log.Debug("category resolve failed", "err", err)
		}

	case *frame.ScrollUpdate:
		// ScrollZone state is purely client-driven in v1; nothing to track
		// server-side beyond forwarding (spec.md §4.5 item 8).
	}
}

func dragAction(eventType uint8) category.PointerAction {
	switch eventType {
	case frame.DragStart:
		return category.ActionDragStart
	case frame.DragMove:
		return category.ActionDragMove
	case frame.DragDrop:
		return category.ActionDragDrop
	default:
		return category.ActionDragCancel
	}
}

// sendPage hands a render frame to the connection's owning goroutine for
// writing. It is safe to call from any goroutine (the server's broadcast
// path calls it after a SetPage, concurrently with serve's own read loop).
func (h *connHandler) sendPage(rf *frame.RenderFrame) error {
	select {
	case h.outCh <- rf:
		return nil
	case <-h.done:
		return errs.ErrSessionClosed
	}
}

func (h *connHandler) write(m frame.Message) error {
	var data []byte
	var err error

	if rf, ok := m.(*frame.RenderFrame); ok {
		data, err = h.sess.EncodeRenderFrame(rf, false)
	} else {
		data = m.Encode()
	}
	if err != nil {
		return err
	}

	if _, err := h.bw.Write(data); err != nil {
		return err
	}

	return h.bw.Flush()
}

func (h *connHandler) writeAndClose(code errs.WireCode) {
	_ = h.write(&frame.ErrorMsg{SessionID: h.sess.SessionID, Code: uint16(code), Msg: code.String()})
	_ = h.write(&frame.Bye{SessionID: h.sess.SessionID, Reason: code.String()})
}

func (h *connHandler) close() {
	h.closeOnce.Do(func() { close(h.done) })
	h.srv.sessions.remove(h.sess.SessionID)
	h.conn.Close()
}
