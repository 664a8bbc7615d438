package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixnet/pixnet/errs"
	"github.com/pixnet/pixnet/frame"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(0, 0)}
	allOpts := append([]Option{WithClock(clock)}, opts...)
	s, err := New(allOpts...)
	require.NoError(t, err)

	return s, clock
}

func TestSession_Handshake_Success(t *testing.T) {
	s, clock := newTestSession(t)

	out, fwd, err := s.HandleInbound(&frame.Handshake{Version: 1, Capabilities: frame.CapCompression, UserAgent: "test"}, clock.Now())
	require.NoError(t, err)
	require.Nil(t, fwd)
	require.Len(t, out, 1)

	ack, ok := out[0].(*frame.Ack)
	require.True(t, ok)
	assert.Equal(t, s.SessionID, ack.SessionID)
	assert.Equal(t, StateActive, s.State)
}

func TestSession_Handshake_WrongMagic_Closes(t *testing.T) {
	s, clock := newTestSession(t)

	_, _, err := s.HandleInbound(&frame.Ping{SessionID: s.SessionID}, clock.Now())
	require.Error(t, err)
	assert.Equal(t, StateClosed, s.State)
}

func TestSession_Handshake_VersionTooHigh_Closes(t *testing.T) {
	s, clock := newTestSession(t)

	_, _, err := s.HandleInbound(&frame.Handshake{Version: 2, Capabilities: 0, UserAgent: "x"}, clock.Now())
	assert.ErrorIs(t, err, errs.UnsupportedVersion)
	assert.Equal(t, StateClosed, s.State)
}

func activeSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	s, clock := newTestSession(t)
	_, _, err := s.HandleInbound(&frame.Handshake{Version: 1, Capabilities: frame.CapCompression, UserAgent: "x"}, clock.Now())
	require.NoError(t, err)

	return s, clock
}

func TestSession_SequenceGap_Closes(t *testing.T) {
	s, clock := activeSession(t)

	_, _, err := s.HandleInbound(&frame.Event{SessionID: s.SessionID, Sequence: 5, Name: "click"}, clock.Now())
	assert.ErrorIs(t, err, errs.ProtocolError)
	assert.Equal(t, StateClosed, s.State)
}

func TestSession_SequenceMonotonic_Accepted(t *testing.T) {
	s, clock := activeSession(t)

	_, fwd, err := s.HandleInbound(&frame.Event{SessionID: s.SessionID, Sequence: 0, Name: "click"}, clock.Now())
	require.NoError(t, err)
	require.NotNil(t, fwd)
	assert.Equal(t, uint32(1), s.InSeq)

	_, _, err = s.HandleInbound(&frame.Event{SessionID: s.SessionID, Sequence: 1, Name: "click"}, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), s.InSeq)
}

func TestSession_PingPong(t *testing.T) {
	s, clock := activeSession(t)

	out, fwd, err := s.HandleInbound(&frame.Ping{SessionID: s.SessionID, Timestamp: 42}, clock.Now())
	require.NoError(t, err)
	require.Nil(t, fwd)
	require.Len(t, out, 1)
	pong := out[0].(*frame.Pong)
	assert.Equal(t, uint64(42), pong.Timestamp)
}

func TestSession_Bye_Closes(t *testing.T) {
	s, clock := activeSession(t)

	_, _, err := s.HandleInbound(&frame.Bye{SessionID: s.SessionID, Reason: "bye"}, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, StateClosed, s.State)
}

func TestSession_Keepalive_TimesOutWithoutPong(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s, err := New(
		WithClock(clock),
		WithKeepaliveIdle(100*time.Millisecond),
		WithKeepaliveTimeout(100*time.Millisecond),
	)
	require.NoError(t, err)

	_, _, err = s.HandleInbound(&frame.Handshake{Version: 1, Capabilities: 0, UserAgent: "x"}, clock.Now())
	require.NoError(t, err)

	clock.Advance(100 * time.Millisecond)
	out, err := s.Tick(clock.Now())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.IsType(t, &frame.Ping{}, out[0])
	assert.Equal(t, StateActive, s.State)

	clock.Advance(100 * time.Millisecond)
	_, err = s.Tick(clock.Now())
	assert.ErrorIs(t, err, errs.Timeout)
	assert.Equal(t, StateClosed, s.State)
}

func TestSession_Keepalive_PongResetsTimer(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s, err := New(WithClock(clock), WithKeepaliveIdle(100*time.Millisecond), WithKeepaliveTimeout(100*time.Millisecond))
	require.NoError(t, err)
	_, _, _ = s.HandleInbound(&frame.Handshake{Version: 1, Capabilities: 0, UserAgent: "x"}, clock.Now())

	clock.Advance(100 * time.Millisecond)
	_, err = s.Tick(clock.Now())
	require.NoError(t, err)

	_, _, err = s.HandleInbound(&frame.Pong{SessionID: s.SessionID}, clock.Now())
	require.NoError(t, err)

	clock.Advance(100 * time.Millisecond)
	_, err = s.Tick(clock.Now())
	assert.NoError(t, err)
	assert.Equal(t, StateActive, s.State)
}

func TestSession_EncodeRenderFrame_PanicsWithoutNegotiatedCompression(t *testing.T) {
	s, clock := newTestSession(t)
	_, _, err := s.HandleInbound(&frame.Handshake{Version: 1, Capabilities: 0, UserAgent: "x"}, clock.Now())
	require.NoError(t, err)

	assert.Panics(t, func() {
		rf := &frame.RenderFrame{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}, CategoryMap: []uint16{0}}
		_, _ = s.EncodeRenderFrame(rf, true)
	})
}
