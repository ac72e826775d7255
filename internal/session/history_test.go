package session

import (
	"fmt"
	"testing"

	"github.com/Jadebat79/tts-web/internal/models"
	"github.com/google/uuid"
)

func entryWithURL(url string) models.HistoryEntry {
	return models.HistoryEntry{
		ID:              uuid.New(),
		SynthesisResult: models.SynthesisResult{URL: url, VoiceID: "Joanna"},
	}
}

func TestLedgerNewestFirst(t *testing.T) {
	l := NewLedger(6)
	l.Push(entryWithURL("first"))
	l.Push(entryWithURL("second"))

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "second" || entries[1].URL != "first" {
		t.Errorf("expected newest-first ordering, got %s, %s", entries[0].URL, entries[1].URL)
	}
}

func TestLedgerCapacityBound(t *testing.T) {
	l := NewLedger(6)
	for i := 0; i < 10; i++ {
		l.Push(entryWithURL(fmt.Sprintf("url-%d", i)))
	}

	if l.Len() != 6 {
		t.Fatalf("expected ledger bounded at 6, got %d", l.Len())
	}

	entries := l.Entries()
	if entries[0].URL != "url-9" {
		t.Errorf("expected most recent entry first, got %s", entries[0].URL)
	}
	if entries[5].URL != "url-4" {
		t.Errorf("expected oldest surviving entry url-4, got %s", entries[5].URL)
	}
}

func TestLedgerEntriesIsACopy(t *testing.T) {
	l := NewLedger(6)
	l.Push(entryWithURL("only"))

	entries := l.Entries()
	entries[0].URL = "mutated"

	if l.Entries()[0].URL != "only" {
		t.Error("ledger entry was mutated through the returned slice")
	}
}
