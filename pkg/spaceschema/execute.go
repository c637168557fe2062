package spaceschema

import "github.com/osvaldoandrade/spaceschema/internal/cli"

// Execute runs the spaceschema CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
