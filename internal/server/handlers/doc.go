// Package handlers implements the dev server endpoints: the artifact
// middleware that answers .md and .txt requests from the latest assembly,
// the client page data endpoint and a health check.
package handlers
