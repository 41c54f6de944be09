package req

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/negotiation"
	"gopkg.in/yaml.v3"
)

const maxMemory = 32 << 20

// A Parser decodes request payloads into structs and validates them.
// A *Parser is safe for concurrent use.
type Parser struct {
	queryParamDecoder *schema.Decoder
	registry          *negotiation.Registry
	validator
}

// A ParserOptFn configures a *Parser.
type ParserOptFn func(*Parser)

// WithRegistry sets the *negotiation.Registry mapping the Content-Type of a request body to a format.
// The registry also backs the "format" validation rule.
func WithRegistry(reg *negotiation.Registry) ParserOptFn {
	return func(p *Parser) {
		if reg != nil {
			p.registry = reg
		}
	}
}

// NewParser constructs a *Parser.
// By default, content types are resolved against negotiation.DefaultRegistry.
func NewParser(opts ...ParserOptFn) *Parser {
	p := &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		registry:          negotiation.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.validator = newValidator(p.registry)
	return p
}

// Parse decodes the payload of r into structPtr, choosing how by r's method and Content-Type.
//
// GET, HEAD and DELETE requests, as well as requests without a body, are parsed from query params.
// URL-encoded and multipart forms are parsed from the posted form.
// JSON and YAML bodies are parsed with ParseBody and ParseYAML.
// Any other Content-Type is a 415 exception.
func (p *Parser) Parse(r *http.Request, structPtr any) error {
	switch {
	case r.Method == http.MethodGet, r.Method == http.MethodHead, r.Method == http.MethodDelete:
		return p.ParseQueryParams(r.URL.Query(), structPtr)
	case r.Body == nil, r.Body == http.NoBody:
		return p.ParseQueryParams(r.URL.Query(), structPtr)
	}

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return unsupported(r.Header.Get("Content-Type"))
	}

	switch mt {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return badFormat("form", err)
		}
		return p.ParseForm(r.PostForm, structPtr)

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return badFormat("form", err)
		}
		return p.ParseForm(r.PostForm, structPtr)
	}

	f, ok := p.registry.FormatOf(mt)
	if !ok {
		return unsupported(mt)
	}

	switch f.Name {
	case "json":
		return p.ParseBody(r.Body, structPtr)
	case "yaml":
		return p.ParseYAML(r.Body, structPtr)
	default:
		return unsupported(mt)
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
// Use a [io.TeeReader] if body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	if err := checkStructPtr("ParseBody", structPtr); err != nil {
		return err
	}

	if err := sonic.ConfigStd.NewDecoder(body).Decode(structPtr); err != nil {
		return badFormat("JSON body", err)
	}

	return p.validate(structPtr)
}

// ParseYAML decodes into a pointer to a struct the YAML data in body.
// If successful, ParseYAML runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// An empty body decodes to the zero value.
func (p *Parser) ParseYAML(body io.Reader, structPtr any) error {
	if err := checkStructPtr("ParseYAML", structPtr); err != nil {
		return err
	}

	if err := yaml.NewDecoder(body).Decode(structPtr); err != nil && !errors.Is(err, io.EOF) {
		return badFormat("YAML body", err)
	}

	return p.validate(structPtr)
}

// ParseForm decodes into a pointer to a struct the form values.
// If successful, ParseForm runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
func (p *Parser) ParseForm(form url.Values, structPtr any) error {
	if err := checkStructPtr("ParseForm", structPtr); err != nil {
		return err
	}

	if err := p.queryParamDecoder.Decode(structPtr, form); err != nil {
		return translateDecoderError(err)
	}

	return p.validate(structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := checkStructPtr("ParseQueryParams", structPtr); err != nil {
		return err
	}

	if err := p.queryParamDecoder.Decode(structPtr, params); err != nil {
		return translateDecoderError(err)
	}

	return p.validate(structPtr)
}

// checkStructPtr returns an error if structPtr is not a non-nil pointer to a struct.
func checkStructPtr(caller string, structPtr any) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("rest/http/req: %w: %s called with %T, not a pointer to a struct", rest.ErrNotValid, caller, structPtr)
	}

	return nil
}

func unsupported(mediaType string) error {
	return exception.NewHTTP(
		http.StatusUnsupportedMediaType,
		fmt.Sprintf("unsupported media type %q", mediaType),
	)
}
