/*
Package buffer captures response output so it can be discarded or replaced
before it reaches the client.

A Stack holds nested output buffers for a single request.
A Writer directs writes into its buffer while that buffer is open
and straight through to the client once it is closed.
Drain closes every buffer opened since a known depth and returns what they held.
*/
package buffer
