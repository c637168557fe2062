package check

import (
	"context"
	"errors"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Service struct {
	resolver Resolver
	compiler Compiler
}

func NewService(resolver Resolver, compiler Compiler) *Service {
	return &Service{resolver: resolver, compiler: compiler}
}

// Check compiles every catalogued version as a JSON Schema document. Per
// version failures land in the report; only cancellation aborts the walk.
func (s *Service) Check(ctx context.Context) (Report, error) {
	if s.resolver == nil || s.compiler == nil {
		return Report{}, errors.New("missing dependencies")
	}

	catalog := s.resolver.Catalog()
	report := Report{Versions: catalog.Len()}
	for _, version := range catalog.Versions() {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		issue, ok, err := s.checkVersion(ctx, catalog, version)
		if err != nil {
			return Report{}, err
		}
		if ok {
			report.Valid++
			continue
		}
		report.Issues = append(report.Issues, issue)
	}
	return report, nil
}

func (s *Service) checkVersion(ctx context.Context, catalog domain.Catalog, version int) (Issue, bool, error) {
	issue := Issue{
		Version:  version,
		Label:    domain.VersionLabel(version),
		FileName: catalog.FileName(version),
	}

	schema, err := s.resolver.Get(ctx, domain.VersionSelector(version), true)
	if err == nil {
		err = s.compiler.Compile(ctx, schema.FileName, schema.Raw)
	}
	if err == nil {
		return Issue{}, true, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Issue{}, false, err
	}

	issue.Code = classify(err)
	issue.Message = err.Error()
	return issue, false, nil
}

func classify(err error) IssueCode {
	switch {
	case errors.Is(err, domain.ErrSchemaNotFound):
		return IssueNotFound
	case errors.Is(err, domain.ErrSchemaInvalidJSON):
		return IssueInvalidJSON
	case errors.Is(err, ErrInvalidSchema):
		return IssueInvalidSchema
	default:
		return IssueIO
	}
}
