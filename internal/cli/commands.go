package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/osvaldoandrade/spaceschema/internal/infra/jsoncodec"
	"github.com/osvaldoandrade/spaceschema/pkg/spaceschemasdk"
	"github.com/spf13/cobra"
)

func newVersionsCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List catalogued schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := openClient(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer client.Close()

			return writeVersionsResult(cmd, client, opts.JSONOutput)
		},
	}
}

func newGetCmd(opts *RootOptions) *cobra.Command {
	var parsed bool
	var canonical bool
	var pretty bool
	cmd := &cobra.Command{
		Use:   "get <selector>",
		Short: "Print a schema by version, stable or latest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if canonical && pretty {
				return ExitError{Code: ExitInvalid, Kind: KindValidation, Message: "--canonical and --pretty are mutually exclusive"}
			}
			client, err := openClient(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer client.Close()

			schema, err := client.Get(cmd.Context(), args[0], parsed || canonical)
			if err != nil {
				return err
			}
			opts.Logger().Debug("schema resolved",
				"selector", args[0],
				"version", schema.Version,
				"file", schema.FileName,
				"draft", schema.Draft,
			)

			body := schema.Raw
			codec := jsoncodec.Codec{}
			switch {
			case canonical:
				body, err = client.Canonical(cmd.Context(), args[0])
			case parsed:
				body, err = codec.Encode(schema.Value)
			case pretty:
				body, err = codec.Indent(schema.Raw)
			}
			if err != nil {
				return err
			}
			return writeGetResult(cmd, schema, body, opts.JSONOutput)
		},
	}
	cmd.Flags().BoolVar(&parsed, "parsed", false, "Decode the schema and print it with sorted keys")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Print the RFC 8785 canonical form")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the raw schema text")
	return cmd
}

func newCheckCmd(opts *RootOptions) *cobra.Command {
	var draft string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile every catalogued version as a JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config()
			cfg.Draft = draft
			client, err := openClientWithConfig(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			var report spaceschemasdk.CheckReport
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).accent("Checking schemas")
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				report, err = client.Check(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			if err := writeCheckResult(cmd, report, opts.JSONOutput); err != nil {
				return err
			}
			if !report.OK() {
				return ExitError{
					Code:    ExitInvalid,
					Kind:    KindValidation,
					Message: fmt.Sprintf("%d of %d schema(s) failed", len(report.Issues), report.Versions),
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&draft, "draft", "", "JSON Schema draft (4, 6, 7, 2019-09, 2020-12)")
	return cmd
}

func newDiffCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Print the merge patch between two schema versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Diff(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return writeDiffResult(cmd, result, opts.JSONOutput)
		},
	}
}

func newIndexCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "SQLite catalog index operations",
		RunE:  runHelp,
	}
	cmd.AddCommand(newIndexExportCmd(opts), newIndexShowCmd(opts))
	return cmd
}

func newIndexExportCmd(opts *RootOptions) *cobra.Command {
	var dbPath string
	var fast bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a SQLite index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config()
			cfg.Index = spaceschemasdk.IndexConfig{DBPath: dbPath, Fast: fast}
			client, err := openClientWithConfig(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			var result spaceschemasdk.IndexExport
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).accent("Exporting index")
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				result, err = client.ExportIndex(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			opts.Logger().Debug("index exported",
				"db", result.DBPath,
				"run_id", result.Run.RunID,
				"versions", len(result.Versions),
				"missing", result.Missing,
			)
			return writeIndexExportResult(cmd, result, opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite index database")
	cmd.Flags().BoolVar(&fast, "fast", false, "Relax SQLite durability for faster writes")
	if err := cmd.MarkFlagRequired("db"); err != nil {
		return cmd
	}
	return cmd
}

func newIndexShowCmd(opts *RootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the last exported catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config()
			cfg.Index = spaceschemasdk.IndexConfig{DBPath: dbPath}
			client, err := openClientWithConfig(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			snapshot, err := client.ShowIndex(cmd.Context())
			if err != nil {
				return err
			}
			return writeIndexShowResult(cmd, snapshot, opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite index database")
	if err := cmd.MarkFlagRequired("db"); err != nil {
		return cmd
	}
	return cmd
}

func openClient(ctx context.Context, opts *RootOptions) (*spaceschemasdk.Client, error) {
	return openClientWithConfig(ctx, opts, opts.config())
}

func openClientWithConfig(ctx context.Context, opts *RootOptions, cfg spaceschemasdk.Config) (*spaceschemasdk.Client, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	client, err := spaceschemasdk.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger().Debug("catalog scanned",
		"dir", client.Config().Dir,
		"source", string(client.Config().Source),
		"revision", client.Revision(),
		"versions", len(client.Versions()),
		"stable", client.StableVersion(),
		"draft", client.DraftVersion(),
		"elapsed", time.Since(started),
	)
	return client, nil
}

type versionOutput struct {
	Version int    `json:"version"`
	Label   string `json:"label"`
	File    string `json:"file"`
	Size    int64  `json:"size"`
	Draft   bool   `json:"draft"`
	Stable  bool   `json:"stable"`
}

type versionsOutput struct {
	Stable   int             `json:"stable"`
	Latest   *int            `json:"latest,omitempty"`
	Draft    int             `json:"draft"`
	Revision string          `json:"revision,omitempty"`
	Versions []versionOutput `json:"versions"`
}

type getOutput struct {
	Version int             `json:"version"`
	Label   string          `json:"label"`
	File    string          `json:"file"`
	Draft   bool            `json:"draft"`
	Schema  json.RawMessage `json:"schema"`
}

type checkIssueOutput struct {
	Version int    `json:"version"`
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type checkOutput struct {
	Versions int                `json:"versions"`
	Valid    int                `json:"valid"`
	Issues   []checkIssueOutput `json:"issues"`
}

type diffOutput struct {
	From     int             `json:"from"`
	To       int             `json:"to"`
	FromFile string          `json:"from_file"`
	ToFile   string          `json:"to_file"`
	Equal    bool            `json:"equal"`
	Patch    json.RawMessage `json:"patch"`
}

type indexVersionOutput struct {
	Version int    `json:"version"`
	File    string `json:"file"`
	Size    int64  `json:"size"`
	SHA256  string `json:"sha256,omitempty"`
	Draft   bool   `json:"draft"`
	Stable  bool   `json:"stable"`
	Latest  bool   `json:"latest"`
}

type indexRunOutput struct {
	RunID         string `json:"run_id"`
	Root          string `json:"root"`
	ScannedAt     string `json:"scanned_at"`
	Versions      int    `json:"versions"`
	DraftVersion  int    `json:"draft_version"`
	StableVersion int    `json:"stable_version"`
}

type indexOutput struct {
	DB       string               `json:"db"`
	Run      *indexRunOutput      `json:"run,omitempty"`
	Missing  int                  `json:"missing,omitempty"`
	Versions []indexVersionOutput `json:"versions"`
}

func writeVersionsResult(cmd *cobra.Command, client *spaceschemasdk.Client, asJSON bool) error {
	out := cmd.OutOrStdout()
	entries := client.Entries()
	if asJSON {
		payload := versionsOutput{
			Stable:   client.StableVersion(),
			Draft:    client.DraftVersion(),
			Revision: client.Revision(),
			Versions: make([]versionOutput, 0, len(entries)),
		}
		if latest, err := client.LatestVersion(); err == nil {
			payload.Latest = &latest
		}
		for _, entry := range entries {
			payload.Versions = append(payload.Versions, versionOutput{
				Version: entry.Version,
				Label:   entry.Label,
				File:    entry.FileName,
				Size:    entry.Size,
				Draft:   entry.Draft,
				Stable:  entry.Stable,
			})
		}
		return encodeJSON(out, payload)
	}

	ui := newRenderer(out, asJSON)
	if len(entries) == 0 {
		_, err := fmt.Fprintf(out, "%s: no schema versions in %s\n", ui.warn("Empty"), client.Config().Dir)
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(out, "%s %s%s\n", ui.key(entry.Label), ui.dim(entry.FileName), ui.versionTags(entry)); err != nil {
			return err
		}
	}
	return nil
}

func writeGetResult(cmd *cobra.Command, schema spaceschemasdk.Schema, body []byte, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := getOutput{
			Version: schema.Version,
			Label:   schema.Label,
			File:    schema.FileName,
			Draft:   schema.Draft,
			Schema:  json.RawMessage(body),
		}
		if !json.Valid(body) {
			raw, err := json.Marshal(string(body))
			if err != nil {
				return err
			}
			payload.Schema = raw
		}
		return encodeJSON(out, payload)
	}

	if _, err := out.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}

func writeCheckResult(cmd *cobra.Command, report spaceschemasdk.CheckReport, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := checkOutput{
			Versions: report.Versions,
			Valid:    report.Valid,
			Issues:   make([]checkIssueOutput, 0, len(report.Issues)),
		}
		for _, issue := range report.Issues {
			payload.Issues = append(payload.Issues, checkIssueOutput{
				Version: issue.Version,
				File:    issue.FileName,
				Code:    issue.Code,
				Message: issue.Message,
			})
		}
		return encodeJSON(out, payload)
	}

	ui := newRenderer(out, asJSON)
	if report.Versions > 0 {
		if _, err := fmt.Fprintf(out, "%s %s\n", ui.key("Check"), ui.progress(report.Valid, report.Versions)); err != nil {
			return err
		}
	}

	if report.OK() {
		_, err := fmt.Fprintf(out, "%s: %d schema(s) compiled\n", ui.ok("OK"), report.Versions)
		return err
	}

	if _, err := fmt.Fprintf(out, "%s %d schema(s): %d ok, %d issue(s)\n", ui.warn("Issues"), report.Versions, report.Valid, len(report.Issues)); err != nil {
		return err
	}
	for _, issue := range report.Issues {
		if _, err := fmt.Fprintf(out, "- %s %s [%s] %s\n", issue.Label, issue.FileName, ui.err(issue.Code), issue.Message); err != nil {
			return err
		}
	}
	return nil
}

func writeDiffResult(cmd *cobra.Command, result spaceschemasdk.DiffResult, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return encodeJSON(out, diffOutput{
			From:     result.From,
			To:       result.To,
			FromFile: result.FromFile,
			ToFile:   result.ToFile,
			Equal:    result.Equal,
			Patch:    json.RawMessage(result.Patch),
		})
	}

	ui := newRenderer(out, asJSON)
	if result.Equal {
		_, err := fmt.Fprintf(out, "%s: %s and %s are identical\n", ui.ok("Equal"), result.FromFile, result.ToFile)
		return err
	}
	if _, err := fmt.Fprintf(out, "%s %s %s\n", ui.dim(result.FromFile), ui.accent("->"), ui.dim(result.ToFile)); err != nil {
		return err
	}
	patch, err := jsoncodec.Codec{}.Indent(result.Patch)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", patch)
	return err
}

func writeIndexExportResult(cmd *cobra.Command, result spaceschemasdk.IndexExport, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := indexOutput{
			DB:       result.DBPath,
			Run:      toRunOutput(result.Run),
			Missing:  result.Missing,
			Versions: toIndexVersionOutputs(result.Versions),
		}
		return encodeJSON(out, payload)
	}

	ui := newRenderer(out, asJSON)
	if err := writeKV(out, ui, "DB", result.DBPath); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Run", result.Run.RunID); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Versions", fmt.Sprintf("%d", len(result.Versions))); err != nil {
		return err
	}
	if result.Missing > 0 {
		return writeKV(out, ui, "Missing", ui.warn(fmt.Sprintf("%d", result.Missing)))
	}
	return nil
}

func writeIndexShowResult(cmd *cobra.Command, snapshot spaceschemasdk.IndexSnapshot, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := indexOutput{
			DB:       snapshot.DBPath,
			Versions: toIndexVersionOutputs(snapshot.Versions),
		}
		if snapshot.HasRun {
			payload.Run = toRunOutput(snapshot.Run)
		}
		return encodeJSON(out, payload)
	}

	ui := newRenderer(out, asJSON)
	if !snapshot.HasRun {
		_, err := fmt.Fprintf(out, "%s: no export recorded in %s\n", ui.warn("Empty"), snapshot.DBPath)
		return err
	}
	if err := writeKV(out, ui, "Run", snapshot.Run.RunID); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Root", snapshot.Run.Root); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Scanned", snapshot.Run.ScannedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	for _, version := range snapshot.Versions {
		digest := version.SHA256
		if len(digest) > 12 {
			digest = digest[:12]
		}
		if digest == "" {
			digest = ui.err("missing")
		}
		if _, err := fmt.Fprintf(out, "%s %s %s\n", ui.key(version.Label), ui.dim(version.FileName), digest); err != nil {
			return err
		}
	}
	return nil
}

func toRunOutput(run spaceschemasdk.IndexRun) *indexRunOutput {
	return &indexRunOutput{
		RunID:         run.RunID,
		Root:          run.Root,
		ScannedAt:     run.ScannedAt.Format(time.RFC3339Nano),
		Versions:      run.Versions,
		DraftVersion:  run.DraftVersion,
		StableVersion: run.StableVersion,
	}
}

func toIndexVersionOutputs(versions []spaceschemasdk.IndexVersion) []indexVersionOutput {
	out := make([]indexVersionOutput, 0, len(versions))
	for _, version := range versions {
		out = append(out, indexVersionOutput{
			Version: version.Version,
			File:    version.FileName,
			Size:    version.Size,
			SHA256:  version.SHA256,
			Draft:   version.Draft,
			Stable:  version.Stable,
			Latest:  version.Latest,
		})
	}
	return out
}

func encodeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeKV(out io.Writer, ui renderer, key, value string) error {
	_, err := fmt.Fprintf(out, "%s: %s\n", ui.key(key), value)
	return err
}

func runHelp(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}
