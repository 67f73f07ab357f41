//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"fmt"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// Context identifies who an evaluation is for.
type Context struct {
	UserID   string   `json:"userId"`
	GroupIDs []string `json:"groupIds,omitempty"`
	Labels   []string `json:"labels,omitempty"`
}

// Matches reports whether a rule applies to the given context.
//
// A disabled rule never matches, regardless of target.  The base target
// matches every context; its values, not its applicability, are what every
// evaluation starts from.
func Matches(rule accessrule.Rule, ctx Context) bool {
	if !rule.Enabled {
		return false
	}

	switch target := rule.Target.(type) {
	case accessrule.BaseTarget:
		return true
	case accessrule.IndividualsTarget:
		return contains(target.UserIDs, ctx.UserID)
	case accessrule.GroupsTarget:
		return intersects(target.GroupIDs, ctx.GroupIDs)
	case accessrule.LabelsTarget:
		return intersects(target.Labels, ctx.Labels)
	default:
		panic(fmt.Sprintf("unknown target kind %q", rule.Target.Kind()))
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, s := range b {
		if contains(a, s) {
			return true
		}
	}
	return false
}
