package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts editing and sync activity for one session. All methods
// are safe for concurrent use.
type Metrics struct {
	keys       atomic.Uint64
	localEdits atomic.Uint64

	sent         atomic.Uint64
	sendFailures atomic.Uint64

	remoteApplied atomic.Uint64
	remoteDropped atomic.Uint64

	saves        atomic.Uint64
	saveFailures atomic.Uint64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records a handled key event and whether it edited the
// document.
func (m *Metrics) RecordKey(changed bool) {
	m.keys.Add(1)
	if changed {
		m.localEdits.Add(1)
	}
}

// RecordSend records an outbound patch.
func (m *Metrics) RecordSend(err error) {
	if err != nil {
		m.sendFailures.Add(1)
		return
	}
	m.sent.Add(1)
}

// RecordRemote records an inbound patch.
func (m *Metrics) RecordRemote(err error) {
	if err != nil {
		m.remoteDropped.Add(1)
		return
	}
	m.remoteApplied.Add(1)
}

// RecordSave records a save attempt.
func (m *Metrics) RecordSave(err error) {
	if err != nil {
		m.saveFailures.Add(1)
		return
	}
	m.saves.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Keys          uint64
	LocalEdits    uint64
	Sent          uint64
	SendFailures  uint64
	RemoteApplied uint64
	RemoteDropped uint64
	Saves         uint64
	SaveFailures  uint64
	Renders       uint64
	RenderAvg     time.Duration
	RenderMax     time.Duration
	Uptime        time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:          m.keys.Load(),
		LocalEdits:    m.localEdits.Load(),
		Sent:          m.sent.Load(),
		SendFailures:  m.sendFailures.Load(),
		RemoteApplied: m.remoteApplied.Load(),
		RemoteDropped: m.remoteDropped.Load(),
		Saves:         m.saves.Load(),
		SaveFailures:  m.saveFailures.Load(),
		Renders:       m.renderCount.Load(),
		RenderMax:     time.Duration(m.renderMaxNs.Load()),
		Uptime:        time.Since(m.startTime),
	}
	if s.Renders > 0 {
		s.RenderAvg = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}

// String formats the snapshot as a single log line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf(
		"keys=%d edits=%d sent=%d send_failures=%d remote_applied=%d remote_dropped=%d saves=%d save_failures=%d renders=%d render_avg=%s render_max=%s uptime=%s",
		s.Keys, s.LocalEdits, s.Sent, s.SendFailures, s.RemoteApplied, s.RemoteDropped,
		s.Saves, s.SaveFailures, s.Renders, s.RenderAvg, s.RenderMax, s.Uptime.Round(time.Second),
	)
}
