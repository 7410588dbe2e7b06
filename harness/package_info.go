// Package harness runs HTTP requests against an http.Handler entirely in process.
//
// It plays the part of a mock-serving test harness: test code creates a RequestBuilder for a verb
// and URI, attaches parameters, headers and optionally a Session, and then calls Harness.Perform.
// The handler runs synchronously on the calling goroutine, with no network transport, and the
// outcome is captured in a Result.
//
// Any http.Handler can be used as the system under test, including chi routers and echo
// instances.
package harness
