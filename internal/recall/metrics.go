package recall

import (
	"sync/atomic"
)

// Metrics counts recall operations. Safe for concurrent use.
type Metrics struct {
	queries   atomic.Int64
	empty     atomic.Int64
	sentences atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Queries       int64 `json:"queries"`
	EmptyResults  int64 `json:"empty_results"`
	SentencesSent int64 `json:"sentences_sent"`
}

func (m *Metrics) record(results int) {
	m.queries.Add(1)
	if results == 0 {
		m.empty.Add(1)
	}
	m.sentences.Add(int64(results))
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Queries:       m.queries.Load(),
		EmptyResults:  m.empty.Load(),
		SentencesSent: m.sentences.Load(),
	}
}
