// Package server provides HTTP routing, middleware, and metrics for the assessment console.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] executes in registration order (first added is outermost), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
// [Logging] emits one structured log line per request with method, path, status, and duration.
//
// [Metrics] records request counts and latency histograms in the default Prometheus registry,
// exposed through [MetricsHandler] on the console's /metrics route.
//
// # Current Usage
//
// The web package (internal/web) builds its route table on [BasicRouter] with
// [Logging] and [Metrics] applied; the serve command constructs the app and
// starts net/http with it as the root handler.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
