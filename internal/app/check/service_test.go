package check

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type fakeResolver struct {
	catalog domain.Catalog
	schemas map[int]string
	errs    map[int]error
}

func (f fakeResolver) Catalog() domain.Catalog {
	return f.catalog
}

func (f fakeResolver) Get(ctx context.Context, selector domain.Selector, parsed bool) (domain.Schema, error) {
	if err := ctx.Err(); err != nil {
		return domain.Schema{}, err
	}
	if err := f.errs[selector.Version]; err != nil {
		return domain.Schema{}, err
	}
	raw, ok := f.schemas[selector.Version]
	if !ok {
		return domain.Schema{}, fmt.Errorf("%w: %d", domain.ErrSchemaNotFound, selector.Version)
	}
	return domain.Schema{
		Version:  selector.Version,
		FileName: f.catalog.FileName(selector.Version),
		Raw:      []byte(raw),
	}, nil
}

type fakeCompiler struct {
	invalid map[string]bool
	names   []string
}

func (f *fakeCompiler) Compile(ctx context.Context, name string, schema []byte) error {
	f.names = append(f.names, name)
	if f.invalid[name] {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, name)
	}
	return nil
}

func threeVersionCatalog() domain.Catalog {
	return domain.NewCatalog("specs", []domain.CatalogEntry{
		{Version: 1, FileName: "1.json"},
		{Version: 2, FileName: "2.json"},
		{Version: 3, FileName: "3-draft.json", Draft: true},
	}, 2)
}

func TestCheckAllValid(t *testing.T) {
	compiler := &fakeCompiler{}
	service := NewService(fakeResolver{
		catalog: threeVersionCatalog(),
		schemas: map[int]string{1: `{}`, 2: `{}`, 3: `{}`},
	}, compiler)

	report, err := service.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !report.OK() || report.Versions != 3 || report.Valid != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if diff := cmp.Diff([]string{"1.json", "2.json", "3-draft.json"}, compiler.names); diff != "" {
		t.Fatalf("unexpected compiled files (-want +got):\n%s", diff)
	}
}

func TestCheckReportsIssues(t *testing.T) {
	service := NewService(fakeResolver{
		catalog: threeVersionCatalog(),
		schemas: map[int]string{2: `{"type":12}`},
		errs: map[int]error{
			3: fmt.Errorf("%w: 3-draft.json: bad", domain.ErrSchemaInvalidJSON),
		},
	}, &fakeCompiler{invalid: map[string]bool{"2.json": true}})

	report, err := service.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if report.OK() || report.Valid != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	codes := make([]IssueCode, 0, len(report.Issues))
	for _, issue := range report.Issues {
		codes = append(codes, issue.Code)
	}
	want := []IssueCode{IssueNotFound, IssueInvalidSchema, IssueInvalidJSON}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("unexpected issue codes (-want +got):\n%s", diff)
	}
	if report.Issues[2].Label != "0.3" || report.Issues[2].FileName != "3-draft.json" {
		t.Fatalf("unexpected issue %+v", report.Issues[2])
	}
}

func TestCheckClassifiesReadFailure(t *testing.T) {
	service := NewService(fakeResolver{
		catalog: domain.NewCatalog("specs", []domain.CatalogEntry{{Version: 1, FileName: "1.json"}}, 1),
		errs:    map[int]error{1: fmt.Errorf("%w: permission denied", domain.ErrSchemaIO)},
	}, &fakeCompiler{})

	report, err := service.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(report.Issues) != 1 || report.Issues[0].Code != IssueIO {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestCheckEmptyCatalog(t *testing.T) {
	service := NewService(fakeResolver{catalog: domain.NewCatalog("specs", nil, 0)}, &fakeCompiler{})
	report, err := service.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !report.OK() || report.Versions != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestCheckStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := NewService(fakeResolver{catalog: threeVersionCatalog()}, &fakeCompiler{})
	if _, err := service.Check(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
