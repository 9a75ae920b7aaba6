package core

import "strings"

// Method is the HTTP verb an API action targets.
// Any string is accepted; the constants cover the verbs with dedicated handling.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// Upper returns the upper-cased verb used in lifecycle type names and dispatch
func (m Method) Upper() string {
	return strings.ToUpper(string(m))
}

// is reports whether m names the same verb as other, ignoring case
func (m Method) is(other Method) bool {
	return strings.EqualFold(string(m), string(other))
}

// Phase identifies one step of an API call's lifecycle
type Phase string

const (
	PhaseRequest Phase = "REQUEST"
	PhaseSuccess Phase = "SUCCESS"
	PhaseFailure Phase = "FAILURE"
)

// LifecycleTypes holds the request, success and failure action types
// for one logical API call, in that order
type LifecycleTypes [3]string

// NewLifecycleTypes builds the lifecycle triple for a base type and method.
// The method is upper-cased: ("USER", "get") yields USER_GET_REQUEST etc.
func NewLifecycleTypes(actionType string, method Method) LifecycleTypes {
	prefix := actionType + "_" + method.Upper() + "_"
	return LifecycleTypes{
		prefix + string(PhaseRequest),
		prefix + string(PhaseSuccess),
		prefix + string(PhaseFailure),
	}
}

// Request returns the type dispatched when the call is issued
func (lt LifecycleTypes) Request() string { return lt[0] }

// Success returns the type dispatched when the call succeeds
func (lt LifecycleTypes) Success() string { return lt[1] }

// Failure returns the type dispatched when the call fails
func (lt LifecycleTypes) Failure() string { return lt[2] }

// Phase returns the phase the given type belongs to within this triple
func (lt LifecycleTypes) Phase(actionType string) (Phase, bool) {
	switch actionType {
	case lt[0]:
		return PhaseRequest, true
	case lt[1]:
		return PhaseSuccess, true
	case lt[2]:
		return PhaseFailure, true
	}
	return "", false
}

// ParseLifecycleType splits a lifecycle type name such as
// "CONTACT_GET_SUCCESS" into its base type, method and phase.
// The method is taken as the last segment before the phase, so base types
// may themselves contain underscores.
func ParseLifecycleType(name string) (base string, method Method, phase Phase, ok bool) {
	for _, p := range []Phase{PhaseRequest, PhaseSuccess, PhaseFailure} {
		rest, found := strings.CutSuffix(name, "_"+string(p))
		if !found {
			continue
		}

		idx := strings.LastIndex(rest, "_")
		if idx <= 0 || idx == len(rest)-1 {
			return "", "", "", false
		}

		return rest[:idx], Method(rest[idx+1:]), p, true
	}
	return "", "", "", false
}
