package session

import (
	"crypto/rand"
	"time"

	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/frame"
	"github.com/pixnet/pixnet/internal/options"
	"github.com/pixnet/pixnet/page"
)

// ServerVersion is the only protocol version this implementation accepts:
// a handshake carrying any other version is answered with
// UNSUPPORTED_VERSION and the session closes.
const ServerVersion uint8 = 1

// Session is a single connection's protocol state (spec.md §3, §4.4). A
// Session is owned exclusively by its driving goroutine; HandleInbound and
// Tick are not safe for concurrent use (spec.md §5).
type Session struct {
	SessionID          [8]byte
	State              State
	NegotiatedVersion  uint8
	PeerCapabilities   uint16
	serverCapabilities uint16
	InSeq              uint32
	OutSeq             uint32
	CurrentPage        *page.Page

	keepaliveIdle     time.Duration
	keepaliveTimeout  time.Duration
	mismatchThreshold int
	mismatchCount     int

	clock             Clock
	lastRecv          time.Time
	lastKeepaliveSent time.Time
	awaitingPong      bool
}

// New creates a Session in StateHandshake with a fresh, unforgeable
// session ID (spec.md §3: "8 random bytes, cryptographically
// unguessable"). The ID is assigned to SessionID here, before the
// handshake, so it is ready to send in the PIXACK reply.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		State:              StateHandshake,
		serverCapabilities: frame.CapCompression,
		keepaliveIdle:      15 * time.Second,
		keepaliveTimeout:   10 * time.Second,
		mismatchThreshold:  5,
		clock:              realClock{},
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	if _, err := rand.Read(s.SessionID[:]); err != nil {
		return nil, err
	}

	s.lastRecv = s.clock.Now()

	return s, nil
}

// HandleInbound advances the state machine for one inbound message
// (spec.md §4.4's transition table). It returns zero or more outbound
// messages the caller must send in order, and a forward message the
// caller should route to the category interpreter (C5) — nil when the
// message was handled entirely within the session (handshake, keepalive,
// termination).
func (s *Session) HandleInbound(msg frame.Message, now time.Time) (outbound []frame.Message, forward frame.Message, err error) {
	s.lastRecv = now

	switch s.State {
	case StateHandshake:
		return s.handleHandshake(msg)
	case StateActive:
		return s.handleActive(msg)
	default:
		return nil, nil, errs.InvalidSession
	}
}

func (s *Session) handleHandshake(msg frame.Message) ([]frame.Message, frame.Message, error) {
	hs, ok := msg.(*frame.Handshake)
	if !ok {
		s.State = StateClosed
		return []frame.Message{
			&frame.ErrorMsg{SessionID: s.SessionID, Code: uint16(errs.ProtocolError), Msg: errs.ProtocolError.String()},
			&frame.Bye{SessionID: s.SessionID, Reason: "expected handshake"},
		}, nil, errs.ProtocolError
	}

	if hs.Version < 1 {
		s.State = StateClosed
		return []frame.Message{
			&frame.ErrorMsg{Code: uint16(errs.UnsupportedVersion), Msg: errs.UnsupportedVersion.String()},
		}, nil, errs.UnsupportedVersion
	}

	if hs.Version != ServerVersion {
		s.State = StateClosed
		return []frame.Message{
			&frame.ErrorMsg{Code: uint16(errs.UnsupportedVersion), Msg: errs.UnsupportedVersion.String()},
		}, nil, errs.UnsupportedVersion
	}

	s.NegotiatedVersion = hs.Version
	s.PeerCapabilities = hs.Capabilities & s.serverCapabilities
	s.State = StateActive

	ack := &frame.Ack{
		Version:            s.NegotiatedVersion,
		SessionID:          s.SessionID,
		ServerCapabilities: s.PeerCapabilities,
	}

	return []frame.Message{ack}, nil, nil
}

func (s *Session) handleActive(msg frame.Message) ([]frame.Message, frame.Message, error) {
	switch m := msg.(type) {
	case *frame.Ping:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}

		return []frame.Message{&frame.Pong{SessionID: s.SessionID, Timestamp: m.Timestamp}}, nil, nil

	case *frame.Pong:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}
		s.awaitingPong = false

		return nil, nil, nil

	case *frame.Bye:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}
		s.State = StateClosed

		return nil, nil, nil

	case *frame.Event:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}
		if err := s.checkSequence(m.Sequence); err != nil {
			return s.protocolClose(err)
		}
		s.InSeq++

		return nil, m, nil

	case *frame.InputResult:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}
		if err := s.checkSequence(m.Sequence); err != nil {
			return s.protocolClose(err)
		}
		s.InSeq++

		return nil, m, nil

	case *frame.ScrollUpdate:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}

		return nil, m, nil

	case *frame.DragUpdate:
		if !s.sessionMatches(m.SessionID) {
			return s.mismatch()
		}

		return nil, m, nil

	default:
		return s.protocolClose(errs.ProtocolError)
	}
}

func (s *Session) checkSequence(seq uint32) error {
	if seq != s.InSeq {
		return errs.ProtocolError
	}

	return nil
}

func (s *Session) sessionMatches(id [8]byte) bool {
	return id == s.SessionID
}

// mismatch records a session_id mismatch; it is not itself a protocol
// error until the running count reaches mismatchThreshold (spec.md §4.4).
func (s *Session) mismatch() ([]frame.Message, frame.Message, error) {
	s.mismatchCount++
	if s.mismatchCount >= s.mismatchThreshold {
		return s.protocolClose(errs.InvalidSession)
	}

	return nil, nil, nil
}

func (s *Session) protocolClose(code errs.WireCode) ([]frame.Message, frame.Message, error) {
	s.State = StateClosed

	return []frame.Message{
		&frame.ErrorMsg{SessionID: s.SessionID, Code: uint16(code), Msg: code.String()},
		&frame.Bye{SessionID: s.SessionID, Reason: code.String()},
	}, nil, code
}

// Tick drives the keepalive timer (spec.md §4.4): after keepaliveIdle with
// no inbound traffic, it sends a PIXPNG; if no PIXPOG arrives within
// keepaliveTimeout, the session closes with TIMEOUT.
func (s *Session) Tick(now time.Time) ([]frame.Message, error) {
	if s.State != StateActive {
		return nil, nil
	}

	if s.awaitingPong {
		if now.Sub(s.lastKeepaliveSent) >= s.keepaliveTimeout {
			s.State = StateClosed
			return nil, errs.Timeout
		}

		return nil, nil
	}

	if now.Sub(s.lastRecv) >= s.keepaliveIdle {
		s.lastKeepaliveSent = now
		s.awaitingPong = true

		return []frame.Message{&frame.Ping{SessionID: s.SessionID, Timestamp: uint64(now.UnixMicro())}}, nil
	}

	return nil, nil
}

// EncodeRenderFrame encodes f, compressing its pixels when compress is
// true. Asking for compression when the session's negotiated capabilities
// do not include it panics, per spec.md §4.4: "a
// programming error, not a runtime branch — enforce by construction in the
// sender path."
func (s *Session) EncodeRenderFrame(f *frame.RenderFrame, compress bool) ([]byte, error) {
	if compress && s.PeerCapabilities&frame.CapCompression == 0 {
		panic("session: attempted to send a compressed frame without negotiated compression capability")
	}

	return f.Encode(compress)
}
