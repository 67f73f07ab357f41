//
//  Copyright © Courseflow Inc. All rights reserved.
//

package timeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/cmd/ace/common"
	"github.com/courseflow/accessengine/pkg/engine"
)

// Execute runs the timeline command: it renders the chronological schedule
// for one user context, as a table or as JSON with --json.
func Execute(ctx context.Context, cmd *cli.Command) error {
	eng, doc, err := common.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	rows := eng.Timeline(common.ParseEvalContext(cmd))

	if cmd.Bool("json") {
		if rows == nil {
			rows = []engine.Row{}
		}
		return common.PrettyPrint(os.Stdout, rows)
	}

	printTable(os.Stdout, doc.Name, rows)
	return nil
}

func printTable(w io.Writer, name string, rows []engine.Row) {
	if name != "" {
		fmt.Fprintf(w, "Timeline for %s:\n", name)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no scheduled events)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tEVENT\tCREDIT\tNOTE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%g%%\t%s\n",
			row.At.Format(time.RFC3339), row.Label, row.CreditPercent, row.Note)
	}
	_ = tw.Flush()
}
