package wiring

import (
	"github.com/charaf8477/firmware/bus"
	"github.com/charaf8477/firmware/errcode"
	"github.com/charaf8477/firmware/types"
	"github.com/charaf8477/firmware/x/timex"
)

// TopicReject is where refused facade operations are published.
var TopicReject = bus.T("wiring", "reject")

type rejectKey struct {
	op   string
	code errcode.Code
}

// diag counts rejections per operation and reason, and mirrors each one to
// the diagnostics bus when a connection is attached. Successful calls cost a
// map lookup only; observable facade behaviour is never affected.
type diag struct {
	conn   *bus.Connection
	counts map[rejectKey]uint32
	total  uint32
}

func (d *diag) record(op string, pin int, code errcode.Code) {
	if code == errcode.OK {
		return
	}
	if d.counts == nil {
		d.counts = make(map[rejectKey]uint32)
	}
	d.counts[rejectKey{op: op, code: code}]++
	d.total++

	if d.conn != nil {
		d.conn.Publish(d.conn.NewMessage(TopicReject, types.Reject{
			Op:   op,
			Pin:  pin,
			Code: string(code),
			TSms: timex.NowMs(),
		}, false))
	}
}

// Rejects returns how many times op was refused with the given reason.
func (b *Board) Rejects(op string, code errcode.Code) uint32 {
	return b.diag.counts[rejectKey{op: op, code: code}]
}

// RejectTotal returns the count of all refused operations so far.
func (b *Board) RejectTotal() uint32 { return b.diag.total }
