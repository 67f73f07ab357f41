//
//  Copyright © Courseflow Inc. All rights reserved.
//

package lint

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/pkg/accessrule/parsers"
	"github.com/courseflow/accessengine/pkg/accessrule/validation"
)

// Execute runs the lint command with the provided context and CLI command.
func Execute(ctx context.Context, cmd *cli.Command) error {
	files := cmd.StringSlice("file")
	if len(files) == 0 {
		return fmt.Errorf("no files specified, use --file/-f to specify YAML files to lint")
	}

	return lintFiles(os.Stdout, files, cmd.Root().Bool("strict"))
}

// lintFiles validates each document and prints per-file findings.  With
// strict set, warnings fail the lint alongside errors.
func lintFiles(w io.Writer, files []string, strict bool) error {
	fmt.Fprintln(w, "Linting rule documents...")
	fmt.Fprintln(w)

	failed := 0
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file))
		if ext != ".yml" && ext != ".yaml" {
			fmt.Fprintf(w, "⚠ %s: Unsupported file type (only .yml, .yaml supported)\n\n", file)
			continue
		}

		if !lintFile(w, file, strict) {
			failed++
		}
	}

	fmt.Fprintln(w, "---")
	if failed > 0 {
		fmt.Fprintf(w, "Linting completed: %d file(s) with errors\n", failed)
		return fmt.Errorf("linting failed: %d file(s) with errors", failed)
	}

	fmt.Fprintf(w, "All checks passed: %d file(s) validated successfully\n", len(files))
	return nil
}

func lintFile(w io.Writer, file string, strict bool) bool {
	doc, err := parsers.Load(file)
	if err != nil {
		fmt.Fprintf(w, "✗ %s (YAML)\n", file)
		fmt.Fprintf(w, "  Error: %s\n\n", err)
		return false
	}

	results := validation.Validate(doc.Rules)

	hasErrors := false
	hasWarnings := false
	for _, result := range results {
		if result.HasErrors() {
			hasErrors = true
		}
		if len(result.Warnings) > 0 {
			hasWarnings = true
		}
	}

	if hasErrors || (strict && hasWarnings) {
		fmt.Fprintf(w, "✗ %s\n", file)
		for _, line := range validation.Summarize(results) {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintln(w)
		return false
	}

	fmt.Fprintf(w, "✓ %s: Valid rule document\n", file)
	for _, line := range validation.Summarize(results) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return true
}
