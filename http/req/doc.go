/*
Package req parses the payload of an HTTP request into a struct.

JSON and YAML bodies, URL-encoded forms and query parameters are supported.
In every case, req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for two tasks.
First, matching keys in the payload to fields on the struct ("json", "yaml" or "schema").
Second, validating the payload's data meets requirements ("validate").

Errors returned by a *Parser are ready to be shown by an ExceptionController.
A malformed payload is a 400 BadRequestException;
a payload failing validation is reported as ValidationErrors,
a 422 UnprocessableEntityException listing each failure under "errors":

	{"code":422,"message":"Unprocessable Entity","errors":[{"field":"title","got":"","rule":"required; string"}]}
*/
package req
