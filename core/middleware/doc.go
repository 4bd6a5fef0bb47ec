// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the consistency endpoints.
//   - RayID: a unique request id injected into the context and response headers
//     for tracing.
//
// Register RayID first so every later log line can carry the id.
package middleware
