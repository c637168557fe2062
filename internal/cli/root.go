package cli

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/osvaldoandrade/spaceschema/internal/platform"
	"github.com/osvaldoandrade/spaceschema/pkg/spaceschemasdk"
	"github.com/spf13/cobra"
)

type RootOptions struct {
	Dir        string
	Source     string
	GitRepo    string
	GitRev     string
	Strict     bool
	JSONOutput bool
	LogLevel   string
	LogFormat  string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		Dir:       envDefault("SPACESCHEMA_DIR", "."),
		Source:    envDefault("SPACESCHEMA_SOURCE", string(spaceschemasdk.SourceFilesystem)),
		GitRepo:   envDefault("SPACESCHEMA_GIT_REPO", ""),
		GitRev:    envDefault("SPACESCHEMA_GIT_REV", "HEAD"),
		Strict:    envBoolDefault("SPACESCHEMA_STRICT", false),
		LogLevel:  envDefault("SPACESCHEMA_LOG_LEVEL", "info"),
		LogFormat: envDefault("SPACESCHEMA_LOG_FORMAT", "text"),
	}
	cmd := &cobra.Command{
		Use:           "spaceschema",
		Short:         "Versioned JSON schema resolver",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return ExitError{Code: ExitInvalid, Kind: KindValidation, Err: err}
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", opts.Dir, "Schema directory (a tree path with --source git)")
	cmd.PersistentFlags().StringVar(&opts.Source, "source", opts.Source, "Schema source (fs, git)")
	cmd.PersistentFlags().StringVar(&opts.GitRepo, "git-repo", opts.GitRepo, "Git repository holding the schemas")
	cmd.PersistentFlags().StringVar(&opts.GitRev, "git-rev", opts.GitRev, "Git revision to read schemas from")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", opts.Strict, "Reject schema files with malformed version names")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")

	cmd.AddCommand(
		newVersionsCmd(opts),
		newGetCmd(opts),
		newCheckCmd(opts),
		newDiffCmd(opts),
		newIndexCmd(opts),
	)

	return cmd
}

// Logger falls back to the default logger when PersistentPreRunE did not run.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func (o *RootOptions) config() spaceschemasdk.Config {
	cfg := spaceschemasdk.DefaultConfig(o.Dir)
	cfg.Source = spaceschemasdk.Source(strings.TrimSpace(o.Source))
	cfg.Strict = o.Strict
	if cfg.Source == spaceschemasdk.SourceGit {
		cfg.Git = spaceschemasdk.GitConfig{RepoPath: o.GitRepo, Revision: o.GitRev}
	}
	return cfg
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBoolDefault(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
