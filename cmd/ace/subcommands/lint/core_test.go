//
//  Copyright © Courseflow Inc. All rights reserved.
//

package lint

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLintValidDocument(t *testing.T) {
	path := writeDoc(t, "valid.yaml", `
apiVersion: accessengine.io/v1
kind: AccessRuleSet
metadata:
  name: demo
spec:
  rules:
    - appliesTo: base
      dateControl:
        dueDate: "2024-03-21T23:59"
`)

	var out bytes.Buffer
	err := lintFiles(&out, []string{path}, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ "+path)
	assert.Contains(t, out.String(), "All checks passed")
}

func TestLintInvalidDocument(t *testing.T) {
	path := writeDoc(t, "invalid.yaml", `
apiVersion: accessengine.io/v1
kind: AccessRuleSet
spec:
  rules:
    - appliesTo: base
      dateControl:
        dueDate: "not a date"
`)

	var out bytes.Buffer
	err := lintFiles(&out, []string{path}, false)
	require.Error(t, err)
	assert.Contains(t, out.String(), "✗ "+path)
	assert.Contains(t, out.String(), "dateControl.dueDate")
}

func TestLintStrictPromotesWarnings(t *testing.T) {
	// A PrairieTest section with no exams is a warning.
	doc := `
apiVersion: accessengine.io/v1
kind: AccessRuleSet
spec:
  rules:
    - appliesTo: base
      prairieTest:
        enabled: true
`
	path := writeDoc(t, "warn.yaml", doc)

	var out bytes.Buffer
	require.NoError(t, lintFiles(&out, []string{path}, false))

	out.Reset()
	require.Error(t, lintFiles(&out, []string{path}, true))
	assert.Contains(t, out.String(), "warning")
}

func TestLintUnsupportedExtension(t *testing.T) {
	path := writeDoc(t, "rules.json", `{}`)

	var out bytes.Buffer
	err := lintFiles(&out, []string{path}, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Unsupported file type")
}
