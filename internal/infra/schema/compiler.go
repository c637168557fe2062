package schema

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	checkapp "github.com/osvaldoandrade/spaceschema/internal/app/check"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compiler checks that documents are well-formed JSON Schemas.
type Compiler struct {
	draft *jsonschema.Draft
}

// NewCompiler returns a compiler for the named draft ("4", "6", "7",
// "2019-09", "2020-12"). An empty name keeps the library default.
func NewCompiler(draft string) (Compiler, error) {
	if strings.TrimSpace(draft) == "" {
		return Compiler{}, nil
	}
	selected, err := ParseDraft(draft)
	if err != nil {
		return Compiler{}, err
	}
	return Compiler{draft: selected}, nil
}

func ParseDraft(value string) (*jsonschema.Draft, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "4", "draft4", "draft-04":
		return jsonschema.Draft4, nil
	case "6", "draft6", "draft-06":
		return jsonschema.Draft6, nil
	case "7", "draft7", "draft-07":
		return jsonschema.Draft7, nil
	case "2019-09", "2019":
		return jsonschema.Draft2019, nil
	case "2020-12", "2020":
		return jsonschema.Draft2020, nil
	default:
		return nil, fmt.Errorf("%w: %s", checkapp.ErrUnsupportedDraft, value)
	}
}

func (c Compiler) Compile(ctx context.Context, name string, schema []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compiler := jsonschema.NewCompiler()
	if c.draft != nil {
		compiler.Draft = c.draft
	}

	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("%w: load %s: %w", checkapp.ErrInvalidSchema, name, err)
	}
	if _, err := compiler.Compile(name); err != nil {
		return fmt.Errorf("%w: compile %s: %w", checkapp.ErrInvalidSchema, name, err)
	}
	return nil
}
