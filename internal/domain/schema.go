package domain

// Schema is a resolved schema document. Value is only set when the parsed
// form was requested.
type Schema struct {
	Version  int
	FileName string
	Draft    bool
	Raw      []byte
	Value    any
}

func (s Schema) Label() string {
	return VersionLabel(s.Version)
}
