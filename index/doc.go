// Package index provides the shared types for kdgo partition trees:
// search results, the Tree interface consumed by the query engine,
// and the error vocabulary for build and query validation.
package index
