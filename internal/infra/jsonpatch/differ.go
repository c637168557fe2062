package jsonpatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanphx/json-patch/v5"
	"github.com/go-json-experiment/json/jsontext"
)

var ErrInvalidDocument = errors.New("merge patch input is not valid json")

// Differ produces RFC 7386 merge patches between schema documents.
type Differ struct{}

// MergePatch returns the patch turning original into modified. Both inputs
// are validated first; CreateMergePatch panics on some truncated documents.
func (Differ) MergePatch(ctx context.Context, original, modified []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !jsontext.Value(original).IsValid() {
		return nil, fmt.Errorf("%w: original", ErrInvalidDocument)
	}
	if !jsontext.Value(modified).IsValid() {
		return nil, fmt.Errorf("%w: modified", ErrInvalidDocument)
	}

	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return patch, nil
}
