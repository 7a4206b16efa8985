// Command docgen generates CLI reference documentation from the toasty
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "toasty",
		Usage:     "Toast notifications for terminal apps",
		UsageText: "toasty [global options] command [command options]",
		Description: `Toasty manages short-lived notifications: a bounded store with FIFO
eviction, tick-driven auto-dismiss, tracked promises and six screen anchors.

Run 'toasty' with no arguments to open the interactive playground.
Run 'toasty play -f script.json' to replay a scripted sequence of toasts.`,
		Flags: commands.GlobalFlags(flags),
	}
	root = commands.Mount(root, flags)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", filepath.Dir(outPath), err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
