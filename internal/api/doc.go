// Package api provides the HTTP REST API for Gray Logic Home.
//
// It exposes the home registry (rooms, devices, reports and smart plug
// power) as JSON under /api/v1.
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
