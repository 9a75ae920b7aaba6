package core

import (
	"encoding/json"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MarshalJSON emits the action in FSA key order: type, payload, error, meta.
// Payload is omitted when nil and error when false.
func (a Action) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	out.Set("type", a.Type)
	if a.Payload != nil {
		out.Set("payload", jsonPayload(a.Payload))
	}
	if a.Error {
		out.Set("error", true)
	}
	if a.Meta != nil {
		out.Set("meta", a.Meta)
	}
	return json.Marshal(out)
}

// MarshalJSON emits caller keys sorted, followed by the reserved keys
// in the order api, endpoint, method, types
func (m Meta) MarshalJSON() ([]byte, error) {
	callerKeys := make([]string, 0, len(m))
	for k := range m {
		if !isReservedMetaKey(k) {
			callerKeys = append(callerKeys, k)
		}
	}
	sort.Strings(callerKeys)

	out := orderedmap.New[string, any]()
	for _, k := range callerKeys {
		out.Set(k, m[k])
	}
	for _, k := range reservedMetaKeys {
		if v, ok := m[k]; ok {
			out.Set(k, v)
		}
	}
	return json.Marshal(out)
}

// jsonPayload makes error payloads serialisable as {"message": "..."}
// unless the error marshals itself
func jsonPayload(payload any) any {
	err, ok := payload.(error)
	if !ok {
		return payload
	}
	if _, marshals := err.(json.Marshaler); marshals {
		return err
	}
	return map[string]string{"message": err.Error()}
}
