//
//  Copyright © Courseflow Inc. All rights reserved.
//

package serve

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/cmd/ace/common"
	"github.com/courseflow/accessengine/internal/logging"
	"github.com/courseflow/accessengine/pkg/decisionpoint/rest"
	"github.com/courseflow/accessengine/pkg/engine/config"
)

var logger = logging.GetLogger("accessengine")

// Execute runs the serve command, starting a REST decision point server for
// the loaded rule document.  It gracefully shuts down on interrupt signals.
func Execute(ctx context.Context, cmd *cli.Command) error {
	eng, doc, err := common.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	port := config.VConfig.GetInt(config.ServePort)
	if cmd.IsSet("port") {
		port = int(cmd.Int("port"))
	}

	server, err := rest.CreateServer(eng, port)
	if err != nil {
		return err
	}
	logger.Infof("serving decisions for %q on port %d", doc.Name, port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("Shutting down server...")

	err = server.Stop(ctx)
	if err != nil {
		return err
	}

	logger.Info("Server exited gracefully.")
	return nil
}
