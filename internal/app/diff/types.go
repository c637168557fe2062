package diff

import "bytes"

type Result struct {
	From     int
	To       int
	FromFile string
	ToFile   string
	Patch    []byte
}

// Equal reports whether the patch is empty.
func (r Result) Equal() bool {
	return bytes.Equal(bytes.TrimSpace(r.Patch), []byte("{}"))
}
