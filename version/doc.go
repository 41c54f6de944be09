/*
Package version extracts the API version a client requests.

An [Extractor] runs one or more strategies against an *http.Request:

  - a custom header, e.g., X-Accept-Version: 1.2
  - a query parameter, e.g., ?version=1.2
  - a media type pattern with a named capture group "version",
    e.g., (v|version)=(?P<version>[0-9\.]+) against application/json;version=1.2

The first strategy producing a version wins.
When none does, or the Extractor is disabled, [None] returns.
Malformed input is treated as no match.
*/
package version
