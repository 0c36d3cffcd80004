package auth

// Destination is an opaque post-login target the frontend resolves
type Destination string

const (
	DestinationAdminHome           Destination = "admin"
	DestinationSupervisorHome      Destination = "supervisor"
	DestinationLibrarianDesk       Destination = "desk"
	DestinationMemberHome          Destination = "home"
	DestinationSubscriptionExpired Destination = "expired"
)

// RoutingPolicy concentrates all role based login branching in one
// place: who needs a second factor and where a finished login lands
type RoutingPolicy struct{}

// RequiresSecondFactor reports whether the role has to pass the
// emailed code challenge after the password check
func (RoutingPolicy) RequiresSecondFactor(r Role) bool {
	switch r {
	case RoleAdmin, RoleSupervisor:
		return false
	default:
		return true
	}
}

// PostLoginDestination picks the landing target for a finished login.
// Library bound roles of a lapsed library are sent to the restricted
// expired destination, admins have no library and are never gated.
func (RoutingPolicy) PostLoginDestination(r Role, libraryActive bool) Destination {
	if r == RoleAdmin {
		return DestinationAdminHome
	}
	if !libraryActive {
		return DestinationSubscriptionExpired
	}
	switch r {
	case RoleSupervisor:
		return DestinationSupervisorHome
	case RoleLibrarian:
		return DestinationLibrarianDesk
	default:
		return DestinationMemberHome
	}
}
