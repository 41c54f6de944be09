// Package negotiation selects the representation a response is rendered in
// from the request's Accept header, its _format attribute, or its path extension.
package negotiation
