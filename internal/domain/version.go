package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SchemaFileExt = ".json"
	DraftMarker   = "-draft"
	VersionPrefix = "0."
)

// SchemaFile is a single directory entry as reported by a schema lister.
type SchemaFile struct {
	Name string
	Size int64
}

func IsSchemaFileName(name string) bool {
	return strings.HasSuffix(name, SchemaFileExt)
}

func IsDraftFileName(name string) bool {
	return strings.Contains(name, DraftMarker)
}

func StripDraftMarker(name string) string {
	return strings.ReplaceAll(name, DraftMarker, "")
}

// ParseVersion extracts the numeric version from a released file name such
// as "13.json" or "0.13.json". Draft names must be normalized first.
// Everything after the optional "0." prefix must be a whole integer, so
// "13-beta.json" is malformed rather than 13 and scans as 0 when lenient.
func ParseVersion(name string) (int, error) {
	base := strings.TrimSuffix(name, SchemaFileExt)
	base = strings.TrimPrefix(base, VersionPrefix)
	version, err := strconv.Atoi(base)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedVersion, name)
	}
	return version, nil
}

func SchemaFileName(version int, draft bool) string {
	if draft {
		return strconv.Itoa(version) + DraftMarker + SchemaFileExt
	}
	return strconv.Itoa(version) + SchemaFileExt
}

// VersionLabel renders a version in its public "0.<n>" form.
func VersionLabel(version int) string {
	return VersionPrefix + strconv.Itoa(version)
}
