package graph

import (
	"sort"
	"strconv"
	"strings"
)

// Attribute keys with typed storage
const (
	AttrCompany  = "company"
	AttrPosition = "position"
	AttrRole     = "role"
	AttrOwner    = "owner_user_id"
	AttrIsTarget = "is_target"
	AttrEmail    = "email"
)

// NodeAttributes are the auxiliary values carried by a node. Company,
// Position and OwnerUserID are typed; any other column lands in Extra.
// Empty strings mean "not set".
type NodeAttributes struct {
	Company     string
	Position    string
	OwnerUserID string
	Extra       map[string]string

	// IsTarget is nil until a target-matching pass has run.
	IsTarget *bool
}

// Get returns the value stored under key. "role" is an alias of "position".
func (a *NodeAttributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	var v string
	switch key {
	case AttrCompany:
		v = a.Company
	case AttrPosition, AttrRole:
		v = a.Position
	case AttrOwner:
		v = a.OwnerUserID
	case AttrIsTarget:
		if a.IsTarget == nil {
			return "", false
		}
		return strconv.FormatBool(*a.IsTarget), true
	default:
		v, ok := a.Extra[key]
		return v, ok
	}
	return v, v != ""
}

// Set stores value under key. Setting "is_target" parses a boolean and
// ignores values that are not one.
func (a *NodeAttributes) Set(key, value string) {
	switch key {
	case AttrCompany:
		a.Company = value
	case AttrPosition, AttrRole:
		a.Position = value
	case AttrOwner:
		a.OwnerUserID = value
	case AttrIsTarget:
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			a.SetTarget(b)
		}
	default:
		if a.Extra == nil {
			a.Extra = make(map[string]string)
		}
		a.Extra[key] = value
	}
}

// SetTarget records the result of target matching.
func (a *NodeAttributes) SetTarget(match bool) {
	a.IsTarget = &match
}

// Keys returns the set keys: typed keys first, then Extra keys sorted,
// then is_target.
func (a *NodeAttributes) Keys() []string {
	if a == nil {
		return nil
	}
	var keys []string
	for _, k := range []string{AttrCompany, AttrPosition, AttrOwner} {
		if _, ok := a.Get(k); ok {
			keys = append(keys, k)
		}
	}
	extra := make([]string, 0, len(a.Extra))
	for k := range a.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	keys = append(keys, extra...)
	if a.IsTarget != nil {
		keys = append(keys, AttrIsTarget)
	}
	return keys
}
