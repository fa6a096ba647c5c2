// Package cloud is the cooperative background service the timing facade
// pumps from inside Delay: it keeps an MQTT session alive over an injected
// byte transport and publishes a periodic heartbeat. There is no goroutine
// here; every step runs synchronously inside the caller's Delay loop.
package cloud

import (
	"io"

	mqtt "github.com/soypat/natiu-mqtt"
)

// Config tunes the service. Zero values get sensible defaults.
type Config struct {
	ClientID string
	// Topic receives the heartbeat publishes.
	Topic string
	// HeartbeatEvery counts service pumps between heartbeats.
	HeartbeatEvery int
	// DecodeBufferSize sizes the no-alloc decoder scratch buffer.
	DecodeBufferSize int
}

// Service implements the wiring background-service hook.
type Service struct {
	cfg Config

	client   *mqtt.Client
	pubFlags mqtt.PacketFlags
	pubVar   mqtt.VariablesPublish

	transport io.ReadWriteCloser
	dialed    bool
	asleep    bool
	updating  bool

	pumps        uint32
	sincePublish int
	published    uint32
	lastErr      error
}

func NewService(cfg Config) *Service {
	if cfg.ClientID == "" {
		cfg.ClientID = "wiring-core"
	}
	if cfg.Topic == "" {
		cfg.Topic = "core/heartbeat"
	}
	if cfg.HeartbeatEvery <= 0 {
		cfg.HeartbeatEvery = 8
	}
	if cfg.DecodeBufferSize <= 0 {
		cfg.DecodeBufferSize = 1024
	}
	flags, _ := mqtt.NewPublishFlags(mqtt.QoS0, false, false)
	return &Service{
		cfg:      cfg,
		pubFlags: flags,
		pubVar: mqtt.VariablesPublish{
			TopicName: []byte(cfg.Topic),
		},
		client: mqtt.NewClient(mqtt.ClientConfig{
			Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, cfg.DecodeBufferSize)},
		}),
	}
}

// Attach hands the service its transport (a TCP connection, a serial link).
// The service stays idle until attached.
func (s *Service) Attach(rwc io.ReadWriteCloser) {
	s.transport = rwc
	s.dialed = false
}

// Sleep suspends servicing without dropping the transport; Wake resumes.
func (s *Service) Sleep() { s.asleep = true }
func (s *Service) Wake()  { s.asleep = false }

// SetUpdating flags an in-progress flash update. While set, the timing
// facade keeps pumping this service back to back instead of resuming its
// wait.
func (s *Service) SetUpdating(v bool) { s.updating = v }

// -----------------------------------------------------------------------------
// wiring.BackgroundService
// -----------------------------------------------------------------------------

func (s *Service) Ready() bool    { return s.transport != nil && !s.asleep }
func (s *Service) Updating() bool { return s.updating }

// Service advances the session by one step: dial once, then publish a
// heartbeat every HeartbeatEvery pumps.
func (s *Service) Service() {
	s.pumps++
	if s.transport == nil {
		return
	}

	if !s.client.IsConnected() {
		if s.dialed {
			// Connection still settling or lost; surface the client's error.
			s.lastErr = s.client.Err()
			return
		}
		var vc mqtt.VariablesConnect
		vc.SetDefaultMQTT([]byte(s.cfg.ClientID))
		if err := s.client.StartConnect(s.transport, &vc); err != nil {
			s.lastErr = err
			return
		}
		s.dialed = true
		return
	}

	s.sincePublish++
	if s.sincePublish < s.cfg.HeartbeatEvery {
		return
	}
	s.sincePublish = 0
	s.pubVar.PacketIdentifier++
	if err := s.client.PublishPayload(s.pubFlags, s.pubVar, []byte("hb")); err != nil {
		s.lastErr = err
		return
	}
	s.published++
}

// Pumps reports how many times the facade has serviced this loop.
func (s *Service) Pumps() uint32 { return s.pumps }

// Published reports the number of heartbeats sent.
func (s *Service) Published() uint32 { return s.published }

// Err returns the last transport or protocol error observed.
func (s *Service) Err() error { return s.lastErr }
