// Package middleware provides HTTP middleware for the server.
package middleware
