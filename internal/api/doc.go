// Package api provides an HTTP client for the todos CRUD API.
//
// The API exposes a single collection endpoint (the base URL) and one item
// endpoint per todo:
//
//	GET    {base}        -> 200 {"todos": [Todo]}
//	POST   {base}        -> 2xx {"todo": Todo}     body {"title"}
//	PUT    {base}/{id}   -> 2xx {"todo": Todo}     body partial {"title"?, "completed"?}
//	DELETE {base}/{id}   -> 2xx {}
//
// Failures carry a non-2xx status and, usually, {"error": string}.
//
// # Errors
//
// Transport failures come back as *NetworkError. Responses the client
// cannot accept come back as *StatusError, whose Message holds the server's
// error text verbatim (empty when the body had none). Callers translate
// these into user facing text; the client never does.
//
// Every request carries an X-Request-Id header and is logged with the
// standard library logger as key=value pairs.
package api
