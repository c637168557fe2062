package spaceschemasdk

import (
	"context"

	checkapp "github.com/osvaldoandrade/spaceschema/internal/app/check"
	diffapp "github.com/osvaldoandrade/spaceschema/internal/app/diff"
	"github.com/osvaldoandrade/spaceschema/internal/infra/jsonpatch"
	"github.com/osvaldoandrade/spaceschema/internal/infra/schema"
)

// Check compiles every catalogued version as a JSON Schema document.
func (c *Client) Check(ctx context.Context) (CheckReport, error) {
	compiler, err := schema.NewCompiler(c.cfg.Draft)
	if err != nil {
		return CheckReport{}, err
	}

	report, err := checkapp.NewService(c.resolver, compiler).Check(ctx)
	if err != nil {
		return CheckReport{}, err
	}

	out := CheckReport{Versions: report.Versions, Valid: report.Valid}
	for _, issue := range report.Issues {
		out.Issues = append(out.Issues, CheckIssue{
			Version:  issue.Version,
			Label:    issue.Label,
			FileName: issue.FileName,
			Code:     string(issue.Code),
			Message:  issue.Message,
		})
	}
	return out, nil
}

// Diff returns the merge patch from one selected schema to another.
func (c *Client) Diff(ctx context.Context, from, to string) (DiffResult, error) {
	fromSel, err := parseSelector(from)
	if err != nil {
		return DiffResult{}, err
	}
	toSel, err := parseSelector(to)
	if err != nil {
		return DiffResult{}, err
	}

	result, err := diffapp.NewService(c.resolver, jsonpatch.Differ{}).Diff(ctx, fromSel, toSel)
	if err != nil {
		return DiffResult{}, err
	}
	return DiffResult{
		From:     result.From,
		To:       result.To,
		FromFile: result.FromFile,
		ToFile:   result.ToFile,
		Patch:    result.Patch,
		Equal:    result.Equal(),
	}, nil
}
