package auth

import (
	"context"

	"github.com/frahmantamala/bakery-hub/internal"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDecide Action = "decide"
)

// MembershipChecker reports whether exactly one membership row links the user to the bakery.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, bakeryID string) (bool, error)
}

// Target is the resource an action applies to.
type Target struct {
	BakeryID string
	// Pending is the current status check for edits. Ignored for other actions.
	Pending bool
}

type GuardAPI interface {
	CheckRole(actor *internal.User, action Action) error
	Authorize(ctx context.Context, actor *internal.User, action Action, target Target) error
}

// Guard is the single authorization predicate every expense operation goes through.
type Guard struct {
	members MembershipChecker
}

func NewGuard(members MembershipChecker) *Guard {
	return &Guard{members: members}
}

func requiredCapability(action Action) Capability {
	switch action {
	case ActionDecide:
		return CapDecide
	case ActionCreate:
		return CapCreate
	default:
		return CapRead
	}
}

// CheckRole runs the tenant-free part of the check.
func (g *Guard) CheckRole(actor *internal.User, action Action) error {
	if actor == nil || actor.ID == "" {
		return internal.ErrUnauthenticated
	}
	if !RoleOf(actor).Can(requiredCapability(action)) {
		if action == ActionDecide {
			return internal.ErrManagerRequired
		}
		return internal.ErrNotBakeryMember
	}
	return nil
}

// Authorize checks identity, role, membership and then the edit status rule, in that order.
func (g *Guard) Authorize(ctx context.Context, actor *internal.User, action Action, target Target) error {
	if err := g.CheckRole(actor, action); err != nil {
		return err
	}

	if target.BakeryID == "" {
		return internal.ErrNotBakeryMember
	}

	ok, err := g.members.IsMember(ctx, actor.ID, target.BakeryID)
	if err != nil {
		return internal.NewInternalError("failed to check bakery membership", err)
	}
	if !ok {
		return internal.ErrNotBakeryMember
	}

	if action == ActionEdit && !target.Pending && !RoleOf(actor).Can(CapEditAnyStatus) {
		return internal.ErrPendingOnly
	}

	return nil
}
