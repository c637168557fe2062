package domain

import "sort"

// CatalogEntry describes one discovered schema version.
type CatalogEntry struct {
	Version  int
	FileName string
	Size     int64
	Draft    bool
}

// Catalog is the immutable result of a directory scan. Entries are sorted
// ascending by version and each version appears once.
type Catalog struct {
	root     string
	entries  []CatalogEntry
	index    map[int]int
	draft    int
	hasDraft bool
	stable   int
}

func NewCatalog(root string, entries []CatalogEntry, stable int) Catalog {
	sorted := append([]CatalogEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	catalog := Catalog{
		root:    root,
		entries: sorted,
		index:   make(map[int]int, len(sorted)),
		stable:  stable,
	}
	for i, entry := range sorted {
		catalog.index[entry.Version] = i
		if entry.Draft && !catalog.hasDraft {
			catalog.draft = entry.Version
			catalog.hasDraft = true
		}
	}
	return catalog
}

func (c Catalog) Root() string {
	return c.root
}

func (c Catalog) Len() int {
	return len(c.entries)
}

func (c Catalog) Entries() []CatalogEntry {
	return append([]CatalogEntry(nil), c.entries...)
}

func (c Catalog) Entry(version int) (CatalogEntry, bool) {
	i, ok := c.index[version]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

func (c Catalog) Versions() []int {
	versions := make([]int, 0, len(c.entries))
	for _, entry := range c.entries {
		versions = append(versions, entry.Version)
	}
	return versions
}

func (c Catalog) VersionStrings() []string {
	labels := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		labels = append(labels, VersionLabel(entry.Version))
	}
	return labels
}

func (c Catalog) Stable() int {
	return c.stable
}

func (c Catalog) Latest() (int, error) {
	if len(c.entries) == 0 {
		return 0, ErrEmptyVersionSet
	}
	return c.entries[len(c.entries)-1].Version, nil
}

// DraftVersion returns 0 when the catalog has no draft.
func (c Catalog) DraftVersion() int {
	return c.draft
}

func (c Catalog) HasDraft() bool {
	return c.hasDraft
}

func (c Catalog) IsDraft(version int) bool {
	return c.hasDraft && c.draft == version
}

// FileName returns the file a lookup reads for version: "<version>-draft.json"
// for the draft version, "<version>.json" otherwise. It ignores the name the
// scan found, so "schema.json" or "0.12.json" are listed but never served.
func (c Catalog) FileName(version int) string {
	return SchemaFileName(version, c.IsDraft(version))
}
