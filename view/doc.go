/*
Package view renders data into an HTTP response in a negotiated format.

A View couples data with a status code, headers, a format and, for templating formats,
the template to render it with.
A Handler turns a View into a *Response,
either by rendering a template or by serializing the data with the Encoder registered for the format.
*/
package view
