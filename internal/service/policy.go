package service

import (
	"fmt"

	"github.com/msomdec/inkwell/internal/domain"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// OwnershipPolicy gates mutation of owned resources.
type OwnershipPolicy struct{}

// Authorize allows the request only when requesterID owns the resource.
func (OwnershipPolicy) Authorize(ownerID, requesterID int64) Decision {
	if ownerID != 0 && ownerID == requesterID {
		return Allow
	}
	return Deny
}

// Require returns domain.ErrForbidden unless requesterID owns the resource.
func (p OwnershipPolicy) Require(ownerID, requesterID int64) error {
	if p.Authorize(ownerID, requesterID) == Deny {
		return fmt.Errorf("%w: only the owner may modify this resource", domain.ErrForbidden)
	}
	return nil
}
