package model

import "time"

// RunManifest describes one generate run; stored in Redis for reproducibility checks.
type RunManifest struct {
	RunID        string           `json:"run_id"` // ULID
	Fingerprint  string           `json:"fingerprint"`
	BankPrefix   int              `json:"bank_prefix"`
	Start        int64            `json:"sequence_start"`
	Digits       int              `json:"sequence_digits"`
	Count        int64            `json:"record_count"`
	Seed         int64            `json:"seed"`
	RefDate      string           `json:"reference_date"`
	Provider     string           `json:"provider"`
	Format       string           `json:"format"`
	Path         string           `json:"path"`
	Bytes        int64            `json:"bytes"`
	Checksum     string           `json:"checksum"` // sha256 hex of the written file
	StatusCounts map[Status]int64 `json:"status_counts"`
	MiddleNames  int64            `json:"middle_names"`
	CreatedAt    time.Time        `json:"created_at"`
}
