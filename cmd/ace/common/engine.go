package common

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/pkg/accessrule"
	"github.com/courseflow/accessengine/pkg/accessrule/parsers"
	"github.com/courseflow/accessengine/pkg/engine"
	"github.com/courseflow/accessengine/pkg/engine/config"
)

// NewCliEngine loads the rule document named by the --file flag and
// constructs an engine from it, honoring strict-validation configuration.
func NewCliEngine(cmd *cli.Command) (*engine.Engine, *accessrule.Document, error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}

	file := cmd.String("file")
	if file == "" {
		return nil, nil, fmt.Errorf("no file specified, use --file/-f to specify a rule document")
	}

	doc, err := parsers.Load(file)
	if err != nil {
		return nil, nil, err
	}

	var opts []engine.OptionsFunc
	if cmd.Root().Bool("strict") || config.VConfig.GetBool(config.StrictValidation) {
		opts = append(opts, engine.WithStrictWarnings())
	}

	eng, err := engine.New(doc.Rules, opts...)
	if err != nil {
		return nil, nil, err
	}

	return eng, doc, nil
}

// ParseEvalContext builds an evaluation context from the --user, --group,
// and --label flags.
func ParseEvalContext(cmd *cli.Command) engine.Context {
	return engine.Context{
		UserID:   cmd.String("user"),
		GroupIDs: cmd.StringSlice("group"),
		Labels:   cmd.StringSlice("label"),
	}
}

// ParseTimeFlag parses an RFC 3339 time flag.  A missing flag returns the
// fallback; a nil fallback propagates as nil.
func ParseTimeFlag(cmd *cli.Command, name string, fallback *time.Time) (*time.Time, error) {
	value := cmd.String(name)
	if value == "" {
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value %q: expected RFC 3339, e.g. 2024-03-19T12:00:00Z", name, value)
	}
	return &t, nil
}

// PrettyPrint writes v as indented JSON.
func PrettyPrint(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
