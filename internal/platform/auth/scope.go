package auth

// Roles known to the system.
const (
	RoleAdmin      = "admin"
	RoleNurse      = "nurse"
	RolePharmacist = "pharmacist"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleNurse || r == RolePharmacist
}

// Scope is the set of site ids a caller may act on. For admins All is true
// and SiteIDs is ignored; every other role carries an explicit set. An
// empty set is legal: scoped queries then match nothing, and list
// endpoints return empty collections rather than errors.
type Scope struct {
	All     bool
	SiteIDs []int64
}

// AllSites is the unrestricted scope.
func AllSites() Scope {
	return Scope{All: true}
}

// SiteSet returns a restricted scope over the given ids.
func SiteSet(ids ...int64) Scope {
	return Scope{SiteIDs: ids}
}

// ScopeFromClaims computes the caller's effective scope: admins are
// unrestricted; everyone else gets {primary site} ∪ assigned sites. The
// primary site is always included, even when it is missing from the
// assigned list.
func ScopeFromClaims(claims *Claims) Scope {
	if claims.Role == RoleAdmin {
		return AllSites()
	}

	ids := make([]int64, 0, len(claims.AssignedSiteIDs)+1)
	seen := make(map[int64]bool, len(claims.AssignedSiteIDs)+1)
	if claims.PrimarySiteID != 0 {
		ids = append(ids, claims.PrimarySiteID)
		seen[claims.PrimarySiteID] = true
	}
	for _, id := range claims.AssignedSiteIDs {
		if id == 0 || seen[id] {
			continue
		}
		ids = append(ids, id)
		seen[id] = true
	}
	return Scope{SiteIDs: ids}
}

// Contains reports whether the scope covers the given site id.
func (s Scope) Contains(siteID int64) bool {
	if s.All {
		return true
	}
	for _, id := range s.SiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}
