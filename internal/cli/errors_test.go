package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	catalogapp "github.com/osvaldoandrade/spaceschema/internal/app/catalog"
	checkapp "github.com/osvaldoandrade/spaceschema/internal/app/check"
	"github.com/osvaldoandrade/spaceschema/internal/domain"
	"github.com/osvaldoandrade/spaceschema/pkg/spaceschemasdk"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantKind ErrorKind
	}{
		{err: domain.ErrSchemaNotFound, wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: fmt.Errorf("%w: 7.json", domain.ErrSchemaNotFound), wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: domain.ErrEmptyVersionSet, wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: domain.ErrSchemaInvalidJSON, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrMalformedVersion, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrInvalidSelector, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: catalogapp.ErrSchemaDirRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: checkapp.ErrUnsupportedDraft, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: spaceschemasdk.ErrInvalidSource, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: spaceschemasdk.ErrGitRepoRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: spaceschemasdk.ErrIndexPath, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrSchemaIO, wantCode: ExitInternal, wantKind: KindInternal},
		{err: errors.New("boom"), wantCode: ExitInternal, wantKind: KindInternal},
	}

	for _, tt := range tests {
		got := NormalizeError(tt.err)
		if got.Code != tt.wantCode {
			t.Fatalf("expected code %d, got %d for %v", tt.wantCode, got.Code, tt.err)
		}
		if got.Kind != tt.wantKind {
			t.Fatalf("expected kind %s, got %s for %v", tt.wantKind, got.Kind, tt.err)
		}
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fatalf("expected ExitCode(nil) == 0")
	}

	custom := ExitError{Code: 9, Kind: KindInternal, Message: "custom"}
	if ExitCode(custom) != 9 {
		t.Fatalf("expected ExitCode(custom) == 9")
	}
	if ExitCode(fmt.Errorf("wrapped: %w", custom)) != 9 {
		t.Fatalf("expected wrapped ExitError to keep its code")
	}
}

func TestWriteCLIErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	exitErr := NormalizeError(fmt.Errorf("%w: 0.42", domain.ErrSchemaNotFound))
	if err := writeCLIError(&buf, exitErr, true); err != nil {
		t.Fatalf("writeCLIError returned error: %v", err)
	}

	var payload struct {
		Code    int    `json:"code"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json output %q: %v", buf.String(), err)
	}
	if payload.Code != ExitNotFound || payload.Kind != string(KindNotFound) {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Message != "schema not found: 0.42" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}
