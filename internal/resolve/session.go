package resolve

import (
	"sync/atomic"

	"sortd/internal/history"
	"sortd/internal/taxonomy"
)

// Session owns the state one scan shares across all workers: the
// suggestion cache, the guardrail policy, the taxonomy snapshot and the
// soft cancellation flag. It replaces what used to live in ambient
// globals so the sharing stays visible at call sites.
type Session struct {
	store    history.Store
	policy   Policy
	snapshot *taxonomy.Snapshot
	snapper  *Snapper
	parser   *Parser

	cancelled atomic.Bool
}

// NewSession wires the shared pieces for one scan. A non-positive
// snapCutoff falls back to DefaultSnapCutoff.
func NewSession(store history.Store, policy Policy, snapshot *taxonomy.Snapshot, snapCutoff float64) *Session {
	return &Session{
		store:    store,
		policy:   policy,
		snapshot: snapshot,
		snapper:  NewSnapper(snapshot, snapCutoff),
		parser:   NewParser(),
	}
}

// Store exposes the suggestion cache backing this session.
func (s *Session) Store() history.Store {
	return s.store
}

// Snapshot exposes the taxonomy snapshot backing this session.
func (s *Session) Snapshot() *taxonomy.Snapshot {
	return s.snapshot
}

// Policy exposes the guardrail settings for this session.
func (s *Session) Policy() Policy {
	return s.policy
}

// CancelAll stops new oracle work from starting. Calls already in
// flight run to completion; files past their last checkpoint still
// resolve and cache normally.
func (s *Session) CancelAll() {
	s.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been signalled.
func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

// Resolve runs raw oracle text through the parse, sanitize, guardrail
// and snap chain. ok is false when the text yielded no usable path and
// the result was built from the sentinel; a pinned result is always ok.
func (s *Session) Resolve(fileName, rawText string) (path string, ok bool) {
	clean := Sanitize(s.parser.Extract(rawText))
	guarded, pinned := s.policy.Apply(fileName, clean)
	if pinned {
		return guarded, true
	}
	return s.snapper.Snap(guarded), clean != Sentinel
}
