// Package webproxy contains the framework-neutral model that acceptance tests use to describe an
// HTTP exchange.
//
// Test code builds a Request, passes it to some Proxy implementation, and makes assertions about
// the Response it gets back. The Proxy decides how the request is actually carried out: the
// harnessproxy package, for instance, runs it against an in-process test harness without any
// network transport.
package webproxy
