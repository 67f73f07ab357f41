//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package parsers loads access-rule documents from YAML files.
//
// Documents carry an apiVersion/kind preamble that selects the versioned
// schema parser.  Currently only accessengine.io/v1 exists.
package parsers

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/courseflow/accessengine/pkg/accessrule"
	"github.com/courseflow/accessengine/pkg/accessrule/parsers/v1"
)

// Preamble represents the header information of an access-rule document.
type Preamble struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// Parse parses an access-rule document from raw YAML.
func Parse(data []byte) (*accessrule.Document, error) {
	var preamble Preamble
	if err := yaml.Unmarshal(data, &preamble); err != nil {
		return nil, err
	}

	if preamble.Kind != "AccessRuleSet" {
		return nil, fmt.Errorf("expected AccessRuleSet got %s", preamble.Kind)
	}

	switch preamble.APIVersion {
	case "accessengine.io/v1":
		return v1.Parse(data)
	}

	return nil, fmt.Errorf("unsupported AccessRuleSet API Version %s", preamble.APIVersion)
}

// Load loads an access-rule document from a file path.
func Load(path string) (*accessrule.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool intentionally reads user-provided paths
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return doc, nil
}
