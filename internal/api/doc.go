// Package api handles incoming HTTP requests, routing, and response
// formatting. It acts as an adapter between external clients and the
// account service, translating HTTP concerns to business operations.
package api
