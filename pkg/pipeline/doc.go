// Package pipeline drives every inbound request through an explicit, ordered
// list of stages and guarantees exactly one response per request.
//
// A Stage either lets the request continue to the next stage or responds,
// which stops the loop. Errors returned by a stage and panics raised inside
// one are handed to the error normalizer, which renders a uniform JSON error
// body. Once the response has been written, the Finish hooks of every stage
// that was entered run in reverse order and observe the final status code.
package pipeline
