package check

type IssueCode string

const (
	IssueNotFound      IssueCode = "not_found"
	IssueInvalidJSON   IssueCode = "invalid_json"
	IssueInvalidSchema IssueCode = "invalid_schema"
	IssueIO            IssueCode = "io"
)

type Issue struct {
	Version  int
	Label    string
	FileName string
	Code     IssueCode
	Message  string
}

type Report struct {
	Versions int
	Valid    int
	Issues   []Issue
}

func (r Report) OK() bool {
	return len(r.Issues) == 0
}
