package core

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCustomEndpoints covers actions built with an EndpointFunc
func TestCustomEndpoints(t *testing.T) {
	tests := []struct {
		name             string
		method           Method
		endpoint         EndpointFunc
		args             []any
		expectedEndpoint string
		expectedPayload  any
	}{
		{
			name:             "GET with no arguments",
			method:           MethodGet,
			endpoint:         func(args ...any) string { return "/tester/mctesterson" },
			expectedEndpoint: "/tester/mctesterson",
			expectedPayload:  map[string]any{},
		},
		{
			name:             "GET by ID",
			method:           MethodGet,
			endpoint:         func(args ...any) string { return fmt.Sprintf("/tester/%v/mctesterson", args[0]) },
			args:             []any{10},
			expectedEndpoint: "/tester/10/mctesterson",
			expectedPayload:  10,
		},
		{
			name:   "GET with multiple arguments",
			method: MethodGet,
			endpoint: func(args ...any) string {
				return fmt.Sprintf("/city/%v/state/%v", args[0], args[1])
			},
			args:             []any{"newport-beach", "ca"},
			expectedEndpoint: "/city/newport-beach/state/ca",
			expectedPayload:  "newport-beach",
		},
		{
			name:   "POST with params",
			method: MethodPost,
			endpoint: func(args ...any) string {
				params := args[0].(map[string]any)
				return fmt.Sprintf("/user/%v/ronald/%v", params["id"], params["name"])
			},
			args:             []any{map[string]any{"id": 10, "name": "james"}},
			expectedEndpoint: "/user/10/ronald/james",
			expectedPayload:  map[string]any{"id": 10, "name": "james"},
		},
		{
			name:   "PUT does not append the ID",
			method: MethodPut,
			endpoint: func(args ...any) string {
				return fmt.Sprintf("/user/%v", args[0].(map[string]any)["id"])
			},
			args:             []any{map[string]any{"id": 10, "name": "james"}},
			expectedEndpoint: "/user/10",
			expectedPayload:  map[string]any{"id": 10, "name": "james"},
		},
		{
			name:   "DELETE with params",
			method: MethodDelete,
			endpoint: func(args ...any) string {
				params := args[0].(map[string]any)
				return fmt.Sprintf("/user/%v/account/%v", params["id"], params["accountID"])
			},
			args:             []any{map[string]any{"id": 10, "accountID": 25}},
			expectedEndpoint: "/user/10/account/25",
			expectedPayload:  map[string]any{"id": 10, "accountID": 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := CreateAPIAction(testType, tt.method, tt.endpoint, nil, nil)(tt.args...)

			if action.Meta.Endpoint() != tt.expectedEndpoint {
				t.Errorf("Expected endpoint '%s', got '%s'", tt.expectedEndpoint, action.Meta.Endpoint())
			}
			if diff := cmp.Diff(tt.expectedPayload, action.Payload); diff != "" {
				t.Errorf("Unexpected payload (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(expectedMeta(tt.method, tt.expectedEndpoint), action.Meta); diff != "" {
				t.Errorf("Unexpected meta (-want +got):\n%s", diff)
			}
		})
	}
}

// TestCustomEndpoint_WithArgsPayload mirrors a custom payload creator paired with a custom endpoint
func TestCustomEndpoint_WithArgsPayload(t *testing.T) {
	creator := NewAPIAction(testType, MethodPost, Template("/cities/:city/state/:state")).
		WithArgsPayload(func(args ...any) any {
			return map[string]any{
				"places": map[string]any{"city": args[0], "state": args[1]},
			}
		}).
		Build()

	action := creator("irvine", "ca")

	expected := Action{
		Type: testType,
		Payload: map[string]any{
			"places": map[string]any{"city": "irvine", "state": "ca"},
		},
		Meta: expectedMeta(MethodPost, "/cities/irvine/state/ca"),
	}
	if diff := cmp.Diff(expected, action); diff != "" {
		t.Errorf("Unexpected action (-want +got):\n%s", diff)
	}
}

// TestCustomEndpoint_NilFirstArgument verifies a nil first argument falls back to an empty payload
func TestCustomEndpoint_NilFirstArgument(t *testing.T) {
	action := CreateAPIAction(testType, MethodPost, Template("/items"), nil, nil)(nil)

	if diff := cmp.Diff(map[string]any{}, action.Payload); diff != "" {
		t.Errorf("Expected empty payload (-want +got):\n%s", diff)
	}
}

// TestPathResolve verifies literal endpoint handling per verb
func TestPathResolve(t *testing.T) {
	tests := []struct {
		name     string
		method   Method
		args     []any
		expected string
	}{
		{"GET", MethodGet, []any{1}, "/items"},
		{"POST", MethodPost, []any{1}, "/items"},
		{"PATCH", MethodPatch, []any{1}, "/items"},
		{"PUT", MethodPut, []any{1}, "/items/1"},
		{"DELETE", MethodDelete, []any{"abc"}, "/items/abc"},
		{"lowercase put", Method("put"), []any{2}, "/items/2"},
		{"DELETE without ID", MethodDelete, nil, "/items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Path("/items").Resolve(tt.method, tt.args...)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

type accountRef struct {
	ID        int    `json:"id"`
	AccountID int    `json:"accountID"`
	Region    string `json:"-"`
	OwnerName string
	secret    string
}

// TestTemplate verifies path parameter interpolation
func TestTemplate(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		args     []any
		expected string
	}{
		{"no params", "/contacts", nil, "/contacts"},
		{"positional", "/city/:city/state/:state", []any{"newport-beach", "ca"}, "/city/newport-beach/state/ca"},
		{"positional missing", "/city/:city/state/:state", []any{"irvine"}, "/city/irvine/state/"},
		{"map by name", "/user/:id/account/:accountID", []any{map[string]any{"id": 10, "accountID": 25}}, "/user/10/account/25"},
		{"map case-insensitive", "/user/:ID", []any{map[string]any{"id": 7}}, "/user/7"},
		{"string map", "/user/:name", []any{map[string]string{"name": "james"}}, "/user/james"},
		{"struct json tags", "/user/:id/account/:accountID", []any{accountRef{ID: 10, AccountID: 25}}, "/user/10/account/25"},
		{"struct pointer", "/user/:id", []any{&accountRef{ID: 3}}, "/user/3"},
		{"struct field name", "/owner/:ownername", []any{accountRef{OwnerName: "ronald"}}, "/owner/ronald"},
		{"struct snake_case", "/owner/:owner_name", []any{accountRef{OwnerName: "ronald"}}, "/owner/ronald"},
		{"struct unexported ignored", "/s/:secret", []any{accountRef{secret: "x"}}, "/s/"},
		{"escaped values", "/search/:term", []any{"a b/c"}, "/search/a%20b%2Fc"},
		{"no args", "/user/:id", nil, "/user/"},
		{"nil map value", "/user/:id", []any{map[string]any{"id": nil}}, "/user/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Template(tt.pattern)(tt.args...)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

// TestTemplate_DeleteWithStruct mirrors DELETE /user/:id/account/:accountID with a struct argument
func TestTemplate_DeleteWithStruct(t *testing.T) {
	creator := CreateAPIAction(testType, MethodDelete, Template("/user/:id/account/:accountID"), nil, nil)
	ref := accountRef{ID: 10, AccountID: 25}

	action := creator(ref)

	if action.Meta.Endpoint() != "/user/10/account/25" {
		t.Errorf("Expected endpoint '/user/10/account/25', got '%s'", action.Meta.Endpoint())
	}
	if action.Payload != ref {
		t.Errorf("Expected payload %v, got %v", ref, action.Payload)
	}
}
