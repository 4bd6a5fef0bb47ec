// Package runs executes consistency runs on demand and keeps their history.
//
// A Service owns the storage backend and serializes runs: a second run requested
// while one is executing fails with ErrRunInProgress. When a database is configured,
// every completed report is stored as a consistency_runs row.
//
// # HTTP Endpoints
//
//   - POST /consistency/runs : Runs all five probes (body: container, location, iterations, object_size).
//   - GET /consistency/runs : Lists stored runs (supports ?limit=N).
//   - GET /consistency/runs/:id : Fetches one stored run.
//   - GET /consistency/status : Reports whether a run is executing and whether history is enabled.
package runs
