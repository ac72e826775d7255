package session

import "github.com/Jadebat79/tts-web/internal/models"

// Ledger is an append-only, capacity-bounded list of completed
// syntheses, newest first. Push is the only mutation; once the bound is
// exceeded the oldest entry is evicted. Entries are never modified after
// insertion.
type Ledger struct {
	limit   int
	entries []models.HistoryEntry
}

func NewLedger(limit int) *Ledger {
	return &Ledger{limit: limit, entries: make([]models.HistoryEntry, 0, limit)}
}

// Push prepends an entry and truncates the sequence to the capacity bound.
func (l *Ledger) Push(entry models.HistoryEntry) {
	l.entries = append([]models.HistoryEntry{entry}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the ledger, newest first.
func (l *Ledger) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
