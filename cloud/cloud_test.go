package cloud

import (
	"bytes"
	"io"
	"testing"
)

// fakeConn captures everything the client writes and answers reads with EOF,
// so the session never completes its handshake.
type fakeConn struct {
	wr     bytes.Buffer
	closed bool
}

func (f *fakeConn) Read(b []byte) (int, error)  { return 0, io.EOF }
func (f *fakeConn) Write(b []byte) (int, error) { return f.wr.Write(b) }
func (f *fakeConn) Close() error                { f.closed = true; return nil }

func TestServiceIdleUntilAttached(t *testing.T) {
	s := NewService(Config{})

	if s.Ready() {
		t.Fatalf("service ready without a transport")
	}
	s.Service()
	if s.Pumps() != 1 {
		t.Fatalf("pumps = %d, want 1", s.Pumps())
	}
	if s.Published() != 0 || s.Err() != nil {
		t.Fatalf("detached pump had side effects: published=%d err=%v", s.Published(), s.Err())
	}
}

func TestSleepWakeGateReadiness(t *testing.T) {
	s := NewService(Config{})
	s.Attach(&fakeConn{})

	if !s.Ready() {
		t.Fatalf("attached service not ready")
	}
	s.Sleep()
	if s.Ready() {
		t.Fatalf("sleeping service still ready")
	}
	s.Wake()
	if !s.Ready() {
		t.Fatalf("woken service not ready")
	}
}

func TestUpdatingFlag(t *testing.T) {
	s := NewService(Config{})
	if s.Updating() {
		t.Fatalf("fresh service reports updating")
	}
	s.SetUpdating(true)
	if !s.Updating() {
		t.Fatalf("updating flag not set")
	}
	s.SetUpdating(false)
	if s.Updating() {
		t.Fatalf("updating flag not cleared")
	}
}

func TestServicePumpsWithoutSession(t *testing.T) {
	conn := &fakeConn{}
	s := NewService(Config{ClientID: "bench"})
	s.Attach(conn)

	s.Service()
	if conn.wr.Len() == 0 {
		t.Fatalf("first pump sent no connect packet")
	}

	// The broker never answers, so no heartbeat ever goes out.
	s.Service()
	s.Service()
	if s.Published() != 0 {
		t.Fatalf("published %d heartbeats without a session", s.Published())
	}
	if s.Pumps() != 3 {
		t.Fatalf("pumps = %d, want 3", s.Pumps())
	}
}

func TestConfigDefaults(t *testing.T) {
	s := NewService(Config{})
	if s.cfg.ClientID == "" || s.cfg.Topic == "" {
		t.Fatalf("identity defaults missing: %+v", s.cfg)
	}
	if s.cfg.HeartbeatEvery <= 0 || s.cfg.DecodeBufferSize <= 0 {
		t.Fatalf("numeric defaults missing: %+v", s.cfg)
	}
}
