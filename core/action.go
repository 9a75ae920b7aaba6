package core

// Action is a Flux Standard Action describing one API call
type Action struct {
	// Type is the base action type given to the factory
	Type string `json:"type"`

	// Payload is derived from the call arguments, or is the error passed in
	Payload any `json:"payload,omitempty"`

	// Error is set when Payload is an error value
	Error bool `json:"error,omitempty"`

	// Meta carries the endpoint, method and lifecycle types for middleware
	Meta Meta `json:"meta,omitempty"`
}

// ActionCreator builds an Action from call-site arguments
type ActionCreator func(args ...any) Action

// PayloadFunc transforms the payload resolved from the call arguments
type PayloadFunc func(payload any) any

// ArgsPayloadFunc derives the payload directly from the raw call arguments
type ArgsPayloadFunc func(args ...any) any

// MetaFunc returns caller-supplied metadata for the resolved payload
type MetaFunc func(payload any) map[string]any

// apiAction is the immutable recipe behind an API action creator
type apiAction struct {
	actionType string
	method     Method
	endpoint   Endpoint
	payload    func(resolved any, args []any) any
	meta       MetaFunc
	logger     *ActionLogger
}

// APIActionBuilder provides a fluent API for configuring API action creators
type APIActionBuilder struct {
	action *apiAction
}

// NewAPIAction creates a new API action builder for the given type, method and endpoint
func NewAPIAction(actionType string, method Method, endpoint Endpoint) *APIActionBuilder {
	return &APIActionBuilder{
		action: &apiAction{
			actionType: actionType,
			method:     method,
			endpoint:   endpoint,
		},
	}
}

// WithPayload sets a function that receives the resolved payload and returns the final one.
// Error payloads are never passed to it.
func (b *APIActionBuilder) WithPayload(fn PayloadFunc) *APIActionBuilder {
	if fn == nil {
		b.action.payload = nil
		return b
	}
	b.action.payload = func(resolved any, _ []any) any {
		return fn(resolved)
	}
	return b
}

// WithArgsPayload sets a function that builds the payload from the raw call arguments.
// It replaces any function set with WithPayload.
func (b *APIActionBuilder) WithArgsPayload(fn ArgsPayloadFunc) *APIActionBuilder {
	if fn == nil {
		b.action.payload = nil
		return b
	}
	b.action.payload = func(_ any, args []any) any {
		return fn(args...)
	}
	return b
}

// WithMeta sets the function supplying extra metadata
func (b *APIActionBuilder) WithMeta(fn MetaFunc) *APIActionBuilder {
	b.action.meta = fn
	return b
}

// WithLogger logs every action built by the creator
func (b *APIActionBuilder) WithLogger(logger *ActionLogger) *APIActionBuilder {
	b.action.logger = logger
	return b
}

// Build returns the configured action creator.
// Later changes to the builder do not affect creators already built.
func (b *APIActionBuilder) Build() ActionCreator {
	recipe := *b.action
	return recipe.create
}

// CreateAPIAction returns an action creator for an API call.
// payloadFn and metaFn are optional and may be nil.
func CreateAPIAction(actionType string, method Method, endpoint Endpoint, payloadFn PayloadFunc, metaFn MetaFunc) ActionCreator {
	return NewAPIAction(actionType, method, endpoint).
		WithPayload(payloadFn).
		WithMeta(metaFn).
		Build()
}

func (a *apiAction) create(args ...any) Action {
	endpoint := a.endpoint.Resolve(a.method, args...)

	action := Action{
		Type:    a.actionType,
		Payload: resolvePayload(a.method, a.endpoint, args),
	}

	if err, ok := action.Payload.(error); ok {
		// An error passed by the caller is the payload as-is
		action.Error = true
		action.Payload = err
	} else if a.payload != nil {
		action.Payload = a.payload(action.Payload, args)
		_, action.Error = action.Payload.(error)
	}

	action.Meta = newMeta(a.meta, action.Payload)
	action.Meta.finalize(endpoint, a.method, NewLifecycleTypes(a.actionType, a.method))

	a.logger.LogAction(action)

	return action
}

// resolvePayload picks the payload from the call arguments:
// an error first argument wins, dynamic endpoints use the first argument,
// POST uses the first argument, PUT the second, everything else an empty map
func resolvePayload(method Method, endpoint Endpoint, args []any) any {
	var first any
	if len(args) > 0 {
		first = args[0]
	}

	if err, ok := first.(error); ok {
		return err
	}

	if isDynamic(endpoint) {
		if first == nil {
			return map[string]any{}
		}
		return first
	}

	switch {
	case method.is(MethodPost):
		return first
	case method.is(MethodPut):
		if len(args) > 1 {
			return args[1]
		}
		return nil
	default:
		return map[string]any{}
	}
}

// CreateAction returns a creator for plain, non-API actions.
// The payload is the first argument unless payloadFn is given; Meta is only
// set when metaFn is given.
func CreateAction(actionType string, payloadFn ArgsPayloadFunc, metaFn MetaFunc) ActionCreator {
	return func(args ...any) Action {
		action := Action{Type: actionType}
		if len(args) > 0 {
			action.Payload = args[0]
		}

		if err, ok := action.Payload.(error); ok {
			action.Error = true
			action.Payload = err
		} else if payloadFn != nil {
			action.Payload = payloadFn(args...)
			_, action.Error = action.Payload.(error)
		}

		if metaFn != nil {
			action.Meta = newMeta(metaFn, action.Payload)
		}

		return action
	}
}
