package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"riseleads_backend/internal/leads/domain"
)

// SnapshotVersion is the current persisted format version.
const SnapshotVersion = 1

// Snapshot is the persisted envelope around the lead collection.
type Snapshot struct {
	Version int           `json:"version"`
	SavedAt time.Time     `json:"savedAt"`
	Leads   []domain.Lead `json:"leads"`
}

// Encode serializes leads into a versioned snapshot.
func Encode(leads []domain.Lead, now time.Time) ([]byte, error) {
	if leads == nil {
		leads = []domain.Lead{}
	}
	return json.Marshal(Snapshot{
		Version: SnapshotVersion,
		SavedAt: now.UTC(),
		Leads:   leads,
	})
}

// Decode parses a snapshot. It also accepts the unversioned format: a bare JSON
// array of leads, as written by the browser client. Empty input decodes to an
// empty collection. Anything unreadable is reported as ErrCorrupt.
func Decode(data []byte) ([]domain.Lead, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Lead{}, nil
	}

	var leads []domain.Lead
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &leads); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	case '{':
		var snap Snapshot
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if snap.Version < 1 || snap.Version > SnapshotVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, snap.Version)
		}
		leads = snap.Leads
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", ErrCorrupt, trimmed[0])
	}

	return normalize(leads), nil
}

// normalize repairs fields the browser client allowed to be missing.
func normalize(leads []domain.Lead) []domain.Lead {
	if leads == nil {
		return []domain.Lead{}
	}
	for i := range leads {
		if leads[i].AuditLog == nil {
			leads[i].AuditLog = []domain.AuditEntry{}
		}
		if leads[i].Status == "" {
			leads[i].Status = domain.StatusNew
		}
	}
	return leads
}
