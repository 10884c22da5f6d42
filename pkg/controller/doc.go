// Package controller contains the request pipeline stages and helper handlers used by the API server.
//
// Provided stages:
//   - AccessLog: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - Metrics: Records request count and latency per route.
//   - CORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - Timeout: Puts an optional deadline on the request context.
//   - DecodeBody: Decodes JSON and form request bodies.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
