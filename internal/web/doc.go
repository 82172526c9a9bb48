// package web serves the browser console for the assessment client.
//
// # Architecture
//
// The console is a classic server-rendered app: html/template for markup,
// HTMX for the two interactive fragments (the upload form and the
// latest-assessment panel), and no other client-side code. Templates are
// embedded so the binary stays self-contained.
//
// # Routes
//
//	GET  /                    console page
//	POST /upload              multipart upload, answers with a card or error fragment
//	GET  /assessments/latest  latest-assessment fragment
//	GET  /assessments/{id}    assessment detail page
//	GET  /workers/rankings    leaderboard page
//	GET  /workers/{id}        worker performance page
//	GET  /healthz             console + backend health JSON
//	GET  /metrics             Prometheus metrics
//
// HTMX ignores non-2xx responses by default, so fragment endpoints always
// answer 200 and put failures in the markup. Full pages keep real status
// codes: 404 for unknown calls and workers, 502 when the backend is down.
//
// # Wiring
//
// [App] implements http.Handler; the serve command mounts it directly on
// net/http. Routing, request logging and request metrics come from
// internal/server. All backend access goes through services.Service, which is
// what the tests swap for a mock.
package web
