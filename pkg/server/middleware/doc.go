// Package middleware provides the HTTP middleware chain for the gateway
// server: panic recovery, request IDs, request logging, and CORS.
package middleware
