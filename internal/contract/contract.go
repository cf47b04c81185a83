// Package contract holds the backend's HTTP contract as an OpenAPI
// document and validates outgoing requests against it.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yaml
var document []byte

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return document
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("failed to load backend contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid backend contract: %w", err)
	}
	return doc, nil
}

// Validator checks requests against the contract.
type Validator struct {
	doc    *openapi3.T
	router routers.Router
}

// NewValidator builds a Validator whose routes are served from baseURL.
func NewValidator(ctx context.Context, baseURL string) (*Validator, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Servers = openapi3.Servers{{URL: baseURL}}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build contract router: %w", err)
	}
	return &Validator{doc: doc, router: router}, nil
}

// Operations lists "METHOD path" for every operation in the contract.
func (v *Validator) Operations() []string {
	var ops []string
	for path, item := range v.doc.Paths.Map() {
		for method := range item.Operations() {
			ops = append(ops, method+" "+path)
		}
	}
	return ops
}

// ValidateRequest checks req, whose body has already been serialized to
// body. req itself is left untouched.
func (v *Validator) ValidateRequest(ctx context.Context, req *http.Request, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%s %s is not part of the contract: %w", req.Method, req.URL.Path, err)
	}

	probe := req.Clone(ctx)
	probe.Body = io.NopCloser(bytes.NewReader(body))
	probe.ContentLength = int64(len(body))

	input := &openapi3filter.RequestValidationInput{
		Request:    probe,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: requireHeader,
		},
	}
	return openapi3filter.ValidateRequest(ctx, input)
}

// requireHeader accepts an apiKey scheme when its header is present.
func requireHeader(_ context.Context, in *openapi3filter.AuthenticationInput) error {
	scheme := in.SecurityScheme
	if scheme == nil || scheme.Type != "apiKey" || scheme.In != "header" {
		return fmt.Errorf("unsupported security scheme %q", in.SecuritySchemeName)
	}
	if in.RequestValidationInput.Request.Header.Get(scheme.Name) == "" {
		return fmt.Errorf("missing %s header", scheme.Name)
	}
	return nil
}
