// Package pivotal is a client for the Pivotal Tracker v5 REST API.
//
// A Client wraps an API token (or a username/password exchange that yields
// one) plus an optional persisted project id, and exposes one method per
// tracker operation: projects, stories, tasks, comments, file attachments
// and story search. All request and response bodies are JSON with
// snake_case keys; the client never retries, caches or paginates.
//
// Transport is injectable, so the whole client can be exercised against a
// scripted HTTPService double without touching the network.
package pivotal
