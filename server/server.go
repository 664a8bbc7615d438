// Package server implements the PIXNET dispatcher (C6): a TCP listener
// that accepts client connections, drives one Session state machine per
// connection, and serves a Page to every connected client (spec.md §4.6).
package server

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixnet/pixnet/frame"
	"github.com/pixnet/pixnet/internal/options"
	"github.com/pixnet/pixnet/page"
)

// Server accepts PIXNET connections and serves the page it currently
// holds. A Server may be reused across Listen calls only after Shutdown
// completes.
type Server struct {
	addr             string
	log              *slog.Logger
	maxFrameSize     int
	rateLimit        int
	shardCount       int
	keepaliveIdle    time.Duration
	keepaliveTimeout time.Duration

	sessions *sessionTable

	pageMu  sync.RWMutex
	current *page.Page

	sequence atomic.Uint32

	listener net.Listener
}

// New constructs a Server with the given options applied over PIXNET's
// defaults (spec.md §4.6, §4.4).
func New(opts ...Option) (*Server, error) {
	s := &Server{
		addr:             DefaultAddr,
		log:              slog.Default(),
		maxFrameSize:     DefaultMaxFrameSize,
		rateLimit:        DefaultRateLimit,
		shardCount:       16,
		keepaliveIdle:    15 * time.Second,
		keepaliveTimeout: 10 * time.Second,
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	s.sessions = newSessionTable(s.shardCount)
	s.log = s.log.With("component", "server")

	return s, nil
}

// SetPage replaces the page served to new connections and broadcasts a
// fresh full frame to every currently connected client (spec.md §3, §4.3).
func (s *Server) SetPage(p *page.Page) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.pageMu.Lock()
	s.current = p
	s.pageMu.Unlock()

	s.broadcast()

	return nil
}

// CurrentPage returns the page currently being served, or nil.
func (s *Server) CurrentPage() *page.Page {
	s.pageMu.RLock()
	defer s.pageMu.RUnlock()

	return s.current
}

func (s *Server) renderFrameFor(p *page.Page, frameType uint8) *frame.RenderFrame {
	if p == nil {
		return nil
	}

	return &frame.RenderFrame{
		FrameType:   frameType,
		Sequence:    s.sequence.Add(1),
		TimestampUs: uint64(time.Now().UnixMicro()),
		Version:     1,
		Width:       p.Width,
		Height:      p.Height,
		Format:      p.Format,
		Pixels:      p.Pixels,
		CategoryMap: p.CategoryMap,
		Categories:  p.Categories,
	}
}

func (s *Server) broadcast() {
	p := s.CurrentPage()
	for _, h := range s.sessions.all() {
		rf := s.renderFrameFor(p, frame.FrameTypeFull)
		if rf == nil {
			continue
		}
		if err := h.sendPage(rf); err != nil {
			s.log.Info("broadcast failed", "remote", h.conn.RemoteAddr(), "err", err)
		}
	}
}

// ListenAndServe opens addr and accepts connections until ctx is
// cancelled or Accept returns a fatal error.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Info("listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.log.Error("accept failed", "err", err)

				return err
			}
		}

		h, err := newConnHandler(s, conn)
		if err != nil {
			s.log.Error("failed to create session", "err", err)
			conn.Close()

			continue
		}

		go h.serve()
	}
}

// Shutdown stops accepting new connections. In-flight connections are not
// forcibly closed, and cancelling the context passed to ListenAndServe only
// closes the listener too; each connection ends when its client
// disconnects or its session closes.
func (s *Server) Shutdown() error {
	if s.listener == nil {
		return nil
	}

	return s.listener.Close()
}

// SessionCount returns the number of currently active sessions.
func (s *Server) SessionCount() int {
	return s.sessions.count()
}
