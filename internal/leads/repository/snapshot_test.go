package repository

import (
	"errors"
	"testing"
	"time"

	"riseleads_backend/internal/leads/domain"
)

func TestEncodeDecodeKeepsOrderAndFields(t *testing.T) {
	saved := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	score := 91
	leads := []domain.Lead{
		{
			ID: "b", Name: "Beta", Status: domain.StatusContacted, SavedAt: saved,
			EnrichedData: &domain.EnrichedData{QualScore: &score, QualSegment: domain.SegmentVeryGood, IsEnriched: true},
			AuditLog:     []domain.AuditEntry{domain.NewAuditEntry("Phase shift to Contacted", domain.AuditInfo, saved)},
		},
		{ID: "a", Name: "Acme", Status: domain.StatusNew, SavedAt: saved, AuditLog: []domain.AuditEntry{}},
	}

	data, err := Encode(leads, saved)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order not preserved: %+v", got)
	}
	if !got[0].IsEnriched() || got[0].QualScore() != 91 {
		t.Fatalf("enrichment lost: %+v", got[0].EnrichedData)
	}
	if !got[0].AuditLog[0].Timestamp.Equal(saved) {
		t.Fatalf("timestamp changed: %s", got[0].AuditLog[0].Timestamp)
	}
}

func TestDecodeAcceptsLegacyBrowserArray(t *testing.T) {
	legacy := `[{"id":"https://maps.example/1","name":"Acme","address":"1 Main St","status":"Replied",
		"category":"Roofing","savedAt":"2024-11-03T10:15:00.000Z",
		"auditLog":[{"event":"[NOTE] called","timestamp":"2024-11-03T11:00:00.000Z","type":"info"}]},
		{"id":"x","name":"NoLog","address":"","category":"","savedAt":"2024-11-03T10:15:00.000Z"}]`

	got, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0].Status != domain.StatusReplied || !got[0].AuditLog[0].IsNote() {
		t.Fatalf("unexpected lead: %+v", got[0])
	}
	if got[1].AuditLog == nil || got[1].Status != domain.StatusNew {
		t.Fatalf("expected missing fields to be repaired: %+v", got[1])
	}
}

func TestDecodeEmptyAndCorrupt(t *testing.T) {
	for _, in := range []string{"", "   ", "null"} {
		got, err := Decode([]byte(in))
		if err != nil || len(got) != 0 {
			t.Fatalf("Decode(%q) = %v, %v; want empty", in, got, err)
		}
	}

	for _, in := range []string{"{not json", `"a string"`, `{"version":99,"leads":[]}`, `[{"id":1}]`} {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("Decode(%q) error = %v, want ErrCorrupt", in, err)
		}
	}
}
