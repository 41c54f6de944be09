/*
Package controller reports errors returned while handling HTTP requests to clients.

An ExceptionController classifies an error into a status code and decides whether its message
can be shown, negotiates the format to report it in, collects the parameters describing it
and renders them, either through a template or serialized in an exception.Wrapper.
Whatever goes wrong while rendering, the client receives a plain text response.
*/
package controller
