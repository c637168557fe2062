package index

import "time"

// VersionRecord is one row of the exported catalog. SHA256 is empty when the
// file could not be read.
type VersionRecord struct {
	Version  int
	Label    string
	FileName string
	Size     int64
	SHA256   string
	Draft    bool
	Stable   bool
	Latest   bool
}

type Run struct {
	RunID         string
	Root          string
	ScannedAt     time.Time
	Versions      int
	DraftVersion  int
	StableVersion int
}

type ExportResult struct {
	Run     Run
	Records []VersionRecord
	Missing int
}

type Snapshot struct {
	Run     Run
	HasRun  bool
	Records []VersionRecord
}
