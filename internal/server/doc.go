// Package server provides HTTP routing, middleware, and the read-only snapshot query API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] added first wraps outermost and runs first.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. [NewAPIRouter] wires the query API with
// [RecoverMiddleware] and [LoggingMiddleware].
//
// # Query API
//
// [SnapshotHandler] serves:
//   - GET /artists/{key} : most recent artist snapshot
//   - GET /artists/{key}/tracks : up to ten most recent track rows
//   - GET /health : storage can be opened
//
// The key matches either the stored artist ID or the exact artist name. Storage is opened for each request
// through an [Opener] and closed when the response is written. [shared.ErrNotFound] maps to 404,
// invalid input to 400, and everything else to 500.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
