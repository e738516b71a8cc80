// file: internals/helpers/auth/request_context.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stepup_backend/internals/constants"
)

/* ============================================
   Locals Keys (auth middleware sets these)
   ============================================ */

const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocCentreID = "centre_id"
)

/* ============================================
   RequestContext
   ============================================ */

// RequestContext is the per-request identity every core operation takes as
// its first argument. It is resolved once from the JWT locals; nothing
// downstream reads fiber locals directly.
type RequestContext struct {
	UserID   uuid.UUID
	Role     string
	CentreID uuid.UUID // zero for owner tokens without an active centre
}

// FromFiber resolves the RequestContext from the locals set by the auth
// middleware. Missing/garbled identity → 401.
func FromFiber(c *fiber.Ctx) (RequestContext, error) {
	var rc RequestContext

	uidRaw := c.Locals(LocUserID)
	if uidRaw == nil {
		return rc, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing user identity")
	}
	uid, err := coerceUUID(uidRaw)
	if err != nil {
		return rc, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: invalid user id in token")
	}
	rc.UserID = uid

	role, _ := c.Locals(LocUserRole).(string)
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return rc, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
	}
	rc.Role = role

	if cidRaw := c.Locals(LocCentreID); cidRaw != nil {
		if cid, err := coerceUUID(cidRaw); err == nil {
			rc.CentreID = cid
		}
	}
	// Only the cross-centre super-role may operate without a centre scope.
	if rc.CentreID == uuid.Nil && rc.Role != constants.RoleOwner {
		return rc, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing centre scope")
	}

	return rc, nil
}

func coerceUUID(v interface{}) (uuid.UUID, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		return uuid.Parse(t)
	default:
		return uuid.Nil, fiber.ErrUnauthorized
	}
}

/* ============================================
   Capability checks
   ============================================ */

// IsSuper reports whether the caller may cross centre boundaries.
func (rc RequestContext) IsSuper() bool {
	return rc.Role == constants.RoleOwner
}

// IsStaff reports whether the caller teaches or administers a centre.
func (rc RequestContext) IsStaff() bool {
	switch rc.Role {
	case constants.RoleTeacher, constants.RoleAdmin, constants.RoleOwner:
		return true
	}
	return false
}

// CanGrade gates MARKED/COMPLETED lesson writes and manual attempt grading.
func (rc RequestContext) CanGrade() bool {
	return rc.IsStaff()
}

// CanManageCatalog gates age-level and lesson administration.
func (rc RequestContext) CanManageCatalog() bool {
	switch rc.Role {
	case constants.RoleAdmin, constants.RoleOwner:
		return true
	}
	return false
}

// CanViewAllPlacements is the staff-wide read gate (grid, analytics).
func (rc RequestContext) CanViewAllPlacements() bool {
	return rc.IsStaff()
}

// SameTenant reports whether the given centre is visible to the caller.
func (rc RequestContext) SameTenant(centreID uuid.UUID) bool {
	if rc.IsSuper() {
		return true
	}
	return rc.CentreID == centreID
}

// ScopeCentre applies the tenant filter value for list queries: owner sees
// the requested centre (or all), everyone else is pinned to their own.
func (rc RequestContext) ScopeCentre(requested uuid.UUID) (uuid.UUID, bool) {
	if rc.IsSuper() {
		return requested, requested != uuid.Nil
	}
	return rc.CentreID, true
}
