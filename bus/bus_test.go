package bus

import "testing"

func TestPublishReachesExactTopicOnly(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("t")
	hits := conn.Subscribe(T("a", "b"))
	other := conn.Subscribe(T("a", "c"))

	conn.Publish(conn.NewMessage(T("a", "b"), 1, false))

	select {
	case m := <-hits.Channel():
		if m.Payload != 1 {
			t.Fatalf("payload = %v, want 1", m.Payload)
		}
	default:
		t.Fatalf("subscriber missed its topic")
	}
	select {
	case m := <-other.Channel():
		t.Fatalf("sibling topic received %+v", m)
	default:
	}
}

func TestRetainedReplaysToLateSubscriber(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("t")

	conn.Publish(conn.NewMessage(T("state"), "up", true))

	late := conn.Subscribe(T("state"))
	select {
	case m := <-late.Channel():
		if m.Payload != "up" {
			t.Fatalf("retained payload = %v, want up", m.Payload)
		}
	default:
		t.Fatalf("retained message not replayed")
	}
}

func TestRetainedClearedByNilPayload(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("t")

	conn.Publish(conn.NewMessage(T("state"), "up", true))
	conn.Publish(conn.NewMessage(T("state"), nil, true))

	late := conn.Subscribe(T("state"))
	select {
	case m := <-late.Channel():
		t.Fatalf("cleared retained message replayed: %+v", m)
	default:
	}
}

func TestFullQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("t")
	sub := conn.Subscribe(T("x"))

	for i := 1; i <= 3; i++ {
		conn.Publish(conn.NewMessage(T("x"), i, false))
	}

	if m := <-sub.Channel(); m.Payload != 2 {
		t.Fatalf("first queued payload = %v, want 2 (1 dropped)", m.Payload)
	}
	if m := <-sub.Channel(); m.Payload != 3 {
		t.Fatalf("second queued payload = %v, want 3", m.Payload)
	}
}

func TestUnsubscribeStopsDeliveryAndClosesChannel(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("t")
	sub := conn.Subscribe(T("x"))

	conn.Unsubscribe(sub)
	conn.Publish(conn.NewMessage(T("x"), 1, false))

	if _, ok := <-sub.Channel(); ok {
		t.Fatalf("channel still open after unsubscribe")
	}
}

func TestDisconnectClosesAllSubscriptions(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("t")
	s1 := conn.Subscribe(T("x"))
	s2 := conn.Subscribe(T("y"))

	conn.Disconnect()

	if _, ok := <-s1.Channel(); ok {
		t.Fatalf("first subscription still open")
	}
	if _, ok := <-s2.Channel(); ok {
		t.Fatalf("second subscription still open")
	}
}

func TestTopicEqual(t *testing.T) {
	if !T("a", "b").Equal(T("a", "b")) {
		t.Fatalf("equal topics reported unequal")
	}
	if T("a").Equal(T("a", "b")) || T("a", "b").Equal(T("a", "c")) {
		t.Fatalf("unequal topics reported equal")
	}
}
