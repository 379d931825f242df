// Package access decides what a caller may do with a product.
//
// Decisions depend only on the caller's internal id, the caller's role and
// the product owner's internal id. Nothing is retained between calls.
package access

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when an existing product may not be mutated by the caller.
var ErrForbidden = errors.New("forbidden")

// HistoryLimit caps the history view.
const HistoryLimit = 50

// Caller is the identity a request acts as.
type Caller struct {
	UserID int
	Role   string
}

// IsAdmin lower-cases the role and compares it to "admin". Any other value is unprivileged.
func (c Caller) IsAdmin() bool {
	return strings.ToLower(c.Role) == "admin"
}

// Scope is the row filter applied to product queries.
// All means no owner restriction; otherwise rows must belong to OwnerID.
type Scope struct {
	All     bool
	OwnerID int
}

// Allows reports whether a row owned by ownerID passes the filter.
func (s Scope) Allows(ownerID int) bool {
	return s.All || s.OwnerID == ownerID
}

// ListScope is used by list, history, export and single reads.
func ListScope(c Caller) Scope {
	if c.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{OwnerID: c.UserID}
}

// CanRead reports whether c may see a product owned by ownerID.
func CanRead(c Caller, ownerID int) bool {
	return ListScope(c).Allows(ownerID)
}

// CanMutate reports whether c may update or delete a product owned by ownerID.
func CanMutate(c Caller, ownerID int) bool {
	return c.IsAdmin() || c.UserID == ownerID
}

// AuthorizeMutation is CanMutate as an error: nil or ErrForbidden.
// The product must already be resolved; absence is the caller's NotFound.
func AuthorizeMutation(c Caller, ownerID int) error {
	if !CanMutate(c, ownerID) {
		return ErrForbidden
	}
	return nil
}

// CreateOwner is the owner assigned to a new product: always the caller.
func CreateOwner(c Caller) int {
	return c.UserID
}
