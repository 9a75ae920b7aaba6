package core

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var fsaKeys = map[string]bool{
	"type":    true,
	"payload": true,
	"error":   true,
	"meta":    true,
}

// IsFSA reports whether the action satisfies the Flux Standard Action contract.
// The struct can only carry FSA keys, so only the type needs checking.
func IsFSA(action Action) bool {
	return action.Type != ""
}

// ValidateFSAJSON checks that an encoded action is a JSON object holding only
// type, payload, error and meta, with a non-null type
func ValidateFSAJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, "decode action")
	}
	if fields == nil {
		return errors.New("action is null")
	}

	for key := range fields {
		if !fsaKeys[key] {
			return errors.Errorf("unexpected key %q", key)
		}
	}

	rawType, ok := fields["type"]
	if !ok {
		return errors.New("missing type")
	}
	if bytes.Equal(bytes.TrimSpace(rawType), []byte("null")) {
		return errors.New("type is null")
	}

	if rawError, ok := fields["error"]; ok {
		var flag bool
		if err := json.Unmarshal(rawError, &flag); err != nil {
			return errors.Wrap(err, "error must be a boolean")
		}
	}

	return nil
}
