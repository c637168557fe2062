package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osvaldoandrade/spaceschema/pkg/spaceschemasdk"
)

func main() {
	dir := os.Getenv("SPACESCHEMA_DIR")
	if dir == "" {
		fmt.Fprintln(os.Stderr, "SPACESCHEMA_DIR is required (directory of <n>.json schemas)")
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := spaceschemasdk.Open(ctx, spaceschemasdk.DefaultConfig(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("versions=%v stable=%d draft=%d\n", client.VersionStrings(), client.StableVersion(), client.DraftVersion())

	for _, selector := range []string{"stable", "latest"} {
		schema, err := client.Get(ctx, selector, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "get %s: %v\n", selector, err)
			continue
		}
		fmt.Printf("%s -> %s (%s) draft=%t\n", selector, schema.Label, schema.FileName, schema.Draft)
	}

	diff, err := client.Diff(ctx, "stable", "latest")
	if err != nil {
		fmt.Fprintf(os.Stderr, "diff: %v\n", err)
		return
	}
	fmt.Printf("stable..latest patch=%s\n", diff.Patch)

	export, err := client.ExportIndex(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "index export: %v\n", err)
		return
	}
	fmt.Printf("index run=%s db=%s versions=%d\n", export.Run.RunID, export.DBPath, len(export.Versions))
}
