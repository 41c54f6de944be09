// Package listener resolves the API version and response format of each request
// before it is handled, recording them in the request's attributes.
package listener
