// Package server holds the HTTP server configuration.
//
// The start command serves the consistency API with these settings: the listen
// port, the API key protecting every route, and the largest iteration count a
// single request may ask for.
package server
