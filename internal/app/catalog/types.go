package catalog

type ScanOptions struct {
	// Strict rejects file names whose version cannot be parsed instead of
	// mapping them to version 0.
	Strict bool
}
