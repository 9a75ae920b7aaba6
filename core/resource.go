package core

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Resource groups the CRUD action creators for one REST collection
type Resource struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Endpoint string `json:"endpoint"`
	BasePath string `json:"base_path"`

	meta   MetaFunc
	logger *ActionLogger
}

// ResourceBuilder provides fluent API for resource configuration
type ResourceBuilder struct {
	resource *Resource
}

// NewResource creates a resource builder for a model name such as "UserAccount".
// The action type defaults to USER_ACCOUNT and the endpoint to /user-accounts.
func NewResource(name string) *ResourceBuilder {
	return &ResourceBuilder{
		resource: &Resource{
			Name:     name,
			Type:     generateActionType(name),
			Endpoint: generateEndpoint(name),
		},
	}
}

// WithType overrides the base action type
func (rb *ResourceBuilder) WithType(actionType string) *ResourceBuilder {
	rb.resource.Type = actionType
	return rb
}

// WithEndpoint overrides the collection endpoint
func (rb *ResourceBuilder) WithEndpoint(endpoint string) *ResourceBuilder {
	rb.resource.Endpoint = endpoint
	return rb
}

// WithBasePath prefixes every endpoint, e.g. "/api/v1"
func (rb *ResourceBuilder) WithBasePath(basePath string) *ResourceBuilder {
	rb.resource.BasePath = basePath
	return rb
}

// WithMeta sets extra metadata for every action of the resource
func (rb *ResourceBuilder) WithMeta(fn MetaFunc) *ResourceBuilder {
	rb.resource.meta = fn
	return rb
}

// WithLogger logs every action built for the resource
func (rb *ResourceBuilder) WithLogger(logger *ActionLogger) *ResourceBuilder {
	rb.resource.logger = logger
	return rb
}

// Build returns the configured resource
func (rb *ResourceBuilder) Build() Resource {
	return *rb.resource
}

// CollectionPath returns the base path joined with the collection endpoint
func (r Resource) CollectionPath() string {
	base := strings.TrimSuffix(r.BasePath, "/")
	endpoint := r.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return base + endpoint
}

// List fetches the whole collection: list()
func (r Resource) List() ActionCreator {
	return r.builder(MethodGet, Path(r.CollectionPath())).Build()
}

// Get fetches one item: get(id). The ID becomes the payload.
func (r Resource) Get() ActionCreator {
	return r.builder(MethodGet, r.itemTemplate()).Build()
}

// Create posts a new item: create(data)
func (r Resource) Create() ActionCreator {
	return r.builder(MethodPost, Path(r.CollectionPath())).Build()
}

// Update replaces an item: update(id, data)
func (r Resource) Update() ActionCreator {
	return r.builder(MethodPut, Path(r.CollectionPath())).Build()
}

// Patch partially updates an item: patch(id, changes)
func (r Resource) Patch() ActionCreator {
	return r.builder(MethodPatch, r.itemTemplate()).
		WithArgsPayload(secondArgument).
		Build()
}

// Delete removes an item: delete(id)
func (r Resource) Delete() ActionCreator {
	return r.builder(MethodDelete, Path(r.CollectionPath())).Build()
}

func (r Resource) builder(method Method, endpoint Endpoint) *APIActionBuilder {
	return NewAPIAction(r.Type, method, endpoint).
		WithMeta(r.meta).
		WithLogger(r.logger)
}

func (r Resource) itemTemplate() EndpointFunc {
	return Template(r.CollectionPath() + "/:id")
}

// secondArgument returns the second call argument, or an empty map
func secondArgument(args ...any) any {
	if len(args) > 1 && args[1] != nil {
		return args[1]
	}
	return map[string]any{}
}

// Helper functions for generating names
func generateActionType(name string) string {
	return strcase.ToScreamingSnake(name)
}

func generateEndpoint(name string) string {
	return "/" + pluralize(strcase.ToKebab(name))
}

// Basic pluralization - can be enhanced later
func pluralize(word string) string {
	if word == "" {
		return word
	}
	if strings.HasSuffix(word, "y") && !endsWithVowelY(word) {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	if strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") ||
		strings.HasSuffix(word, "z") || strings.HasSuffix(word, "ch") ||
		strings.HasSuffix(word, "sh") {
		return word + "es"
	}
	return word + "s"
}

// endsWithVowelY catches words like "key" and "day" that just take an "s"
func endsWithVowelY(word string) bool {
	if len(word) < 2 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(word[len(word)-2]))
}
