package spaceschemasdk

import "time"

type Schema struct {
	Version  int
	Label    string
	FileName string
	Draft    bool
	Raw      []byte
	Value    any
}

type Entry struct {
	Version  int
	Label    string
	FileName string
	Size     int64
	Draft    bool
	Stable   bool
}

type CheckIssue struct {
	Version  int
	Label    string
	FileName string
	Code     string
	Message  string
}

type CheckReport struct {
	Versions int
	Valid    int
	Issues   []CheckIssue
}

func (r CheckReport) OK() bool {
	return len(r.Issues) == 0
}

type DiffResult struct {
	From     int
	To       int
	FromFile string
	ToFile   string
	Patch    []byte
	Equal    bool
}

type IndexVersion struct {
	Version  int
	Label    string
	FileName string
	Size     int64
	SHA256   string
	Draft    bool
	Stable   bool
	Latest   bool
}

type IndexRun struct {
	RunID         string
	Root          string
	ScannedAt     time.Time
	Versions      int
	DraftVersion  int
	StableVersion int
}

type IndexExport struct {
	DBPath   string
	Run      IndexRun
	Versions []IndexVersion
	Missing  int
}

type IndexSnapshot struct {
	DBPath   string
	Run      IndexRun
	HasRun   bool
	Versions []IndexVersion
}
