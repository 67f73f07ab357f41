//
//  Copyright © Courseflow Inc. All rights reserved.
//

package eval

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/cmd/ace/common"
)

// Execute runs the eval command: it evaluates access, credit, and
// visibility for one user context at one instant and prints the decision
// as JSON.
func Execute(ctx context.Context, cmd *cli.Command) error {
	eng, _, err := common.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	at, err := common.ParseTimeFlag(cmd, "at", &now)
	if err != nil {
		return err
	}

	completedAt, err := common.ParseTimeFlag(cmd, "completed-at", nil)
	if err != nil {
		return err
	}

	decision := eng.Decide(common.ParseEvalContext(cmd), completedAt, *at)
	return common.PrettyPrint(os.Stdout, decision)
}
