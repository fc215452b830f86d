// Package authz holds the static access policy: which roles may invoke
// which operations. The table is built once at startup and read-only
// afterwards, so it can be inspected centrally and checked for coverage
// instead of scattering role requirements across handlers.
//
// The package is deliberately free of external dependencies so it can
// be reasoned about (and tested) without authentication or HTTP
// machinery in scope.
package authz

import (
	"errors"
	"fmt"
	"sort"
)

// Evaluation outcomes for a denied request.
var (
	// ErrUnauthorized means the operation requires a role but the
	// request carried no verified principal.
	ErrUnauthorized = errors.New("authz: authentication required")

	// ErrForbidden means the request was authenticated but its role is
	// not in the operation's required set.
	ErrForbidden = errors.New("authz: insufficient role")
)

// Policy maps operations to the set of roles permitted to invoke them.
// An operation is identified as "METHOD path" using the route template
// (e.g. "GET /api/v1/users/:id"). An empty role set means public.
type Policy struct {
	rules map[string][]string
}

// NewPolicy creates an empty policy table.
func NewPolicy() *Policy {
	return &Policy{rules: make(map[string][]string)}
}

// Require records the required role set for an operation. Calling it
// with no roles marks the operation as explicitly public.
func (p *Policy) Require(method, path string, roles ...string) {
	p.rules[operation(method, path)] = roles
}

// RequiredRoles returns the role set for an operation and whether the
// operation is known to the table at all.
func (p *Policy) RequiredRoles(method, path string) ([]string, bool) {
	roles, ok := p.rules[operation(method, path)]
	return roles, ok
}

// Covers reports whether the operation has a policy entry.
func (p *Policy) Covers(method, path string) bool {
	_, ok := p.rules[operation(method, path)]
	return ok
}

// Operations returns every operation in the table, sorted.
func (p *Policy) Operations() []string {
	ops := make([]string, 0, len(p.rules))
	for op := range p.rules {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

func operation(method, path string) string {
	return fmt.Sprintf("%s %s", method, path)
}

// Evaluate decides whether a request may proceed. required is the
// operation's role set; role is the verified principal's role, with
// authenticated false when the request carried no principal.
//
// An empty required set always allows. A non-empty set with no
// principal is ErrUnauthorized. Otherwise the role must match one of
// the required roles exactly: no hierarchy, no case folding, and an
// unrecognized role string denies like any other mismatch.
func Evaluate(required []string, role string, authenticated bool) error {
	if len(required) == 0 {
		return nil
	}
	if !authenticated {
		return ErrUnauthorized
	}
	for _, r := range required {
		if role == r {
			return nil
		}
	}
	return ErrForbidden
}
