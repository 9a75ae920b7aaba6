package core

// Reserved meta keys, always set by the factory after caller metadata
const (
	MetaKeyAPI      = "api"
	MetaKeyEndpoint = "endpoint"
	MetaKeyMethod   = "method"
	MetaKeyTypes    = "types"
)

var reservedMetaKeys = []string{MetaKeyAPI, MetaKeyEndpoint, MetaKeyMethod, MetaKeyTypes}

// Meta holds auxiliary action information for middleware
type Meta map[string]any

// newMeta copies the caller's metadata for the payload into a fresh Meta
func newMeta(fn MetaFunc, payload any) Meta {
	meta := Meta{}
	if fn == nil {
		return meta
	}
	for k, v := range fn(payload) {
		meta[k] = v
	}
	return meta
}

// finalize sets the reserved keys, overwriting any caller-supplied values
func (m Meta) finalize(endpoint string, method Method, types LifecycleTypes) {
	m[MetaKeyAPI] = true
	m[MetaKeyEndpoint] = endpoint
	m[MetaKeyMethod] = string(method)
	m[MetaKeyTypes] = types
}

// IsAPI reports whether the action was built by an API action creator
func (m Meta) IsAPI() bool {
	api, _ := m[MetaKeyAPI].(bool)
	return api
}

// Endpoint returns the resolved endpoint
func (m Meta) Endpoint() string {
	endpoint, _ := m[MetaKeyEndpoint].(string)
	return endpoint
}

// Method returns the method as it was given to the factory
func (m Meta) Method() Method {
	method, _ := m[MetaKeyMethod].(string)
	return Method(method)
}

// Types returns the lifecycle types.
// Meta decoded from JSON carries them as a list, which is converted.
func (m Meta) Types() (LifecycleTypes, bool) {
	switch v := m[MetaKeyTypes].(type) {
	case LifecycleTypes:
		return v, true
	case []string:
		if len(v) == 3 {
			return LifecycleTypes{v[0], v[1], v[2]}, true
		}
	case []any:
		if len(v) != 3 {
			return LifecycleTypes{}, false
		}
		var types LifecycleTypes
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return LifecycleTypes{}, false
			}
			types[i] = s
		}
		return types, true
	}
	return LifecycleTypes{}, false
}

// isReservedMetaKey reports whether key is one the factory always sets
func isReservedMetaKey(key string) bool {
	for _, reserved := range reservedMetaKeys {
		if key == reserved {
			return true
		}
	}
	return false
}
