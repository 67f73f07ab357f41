//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package decisionpoint provides interfaces and implementations for access
// decision point servers.
//
// A decision point exposes the access engine as a network service that
// course delivery frontends can call to decide whether an assessment is
// open, what credit applies, and what remains visible after completion.
//
// # Available Implementations
//
//   - [rest]: HTTP/REST server exposing decision and timeline endpoints
//
// # Usage
//
// Create and start a decision point server:
//
//	eng, _ := engine.New(doc.Rules)
//	server, _ := rest.CreateServer(eng, 8080)
//	defer server.Stop(ctx)
package decisionpoint

import "context"

// Server is the interface for decision point servers that can be gracefully
// stopped.
//
// Implementations must ensure that [Stop] completes any in-flight requests
// before returning.
type Server interface {
	// Stop gracefully shuts down the server, waiting for active requests
	// to complete or until the context is cancelled.
	Stop(context.Context) error
}
