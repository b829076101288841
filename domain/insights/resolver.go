// Package insights contains the pure computation pipeline behind the
// dashboard: heuristic column resolution, grouping primitives, report
// variants, the leaderboard and the geographic concentration table. Nothing
// in this package performs I/O or holds state between calls.
package insights

import "strings"

// Role is a semantic column meaning the engine knows how to look for. The
// keyword tables below are the entire "schema" the system understands;
// uploaded files never declare one.
type Role string

const (
	RoleRevenue   Role = "revenue"
	RoleTier      Role = "tier"
	RoleCity      Role = "city"
	RoleMethod    Role = "payment_method"
	RoleChannel   Role = "channel"
	RoleSeller    Role = "seller"
	RoleBuyerName Role = "buyer_name"
	RoleEmail     Role = "email"
)

// roleKeywords maps each semantic role to its keyword list in priority
// order. Earlier keywords win over later ones regardless of header position.
var roleKeywords = map[Role][]string{
	RoleRevenue:   {"total", "revenue", "amount", "price", "sales", "spent"},
	RoleTier:      {"tier", "plan", "level", "segment"},
	RoleCity:      {"city", "location", "region", "area", "state"},
	RoleMethod:    {"method", "payment", "pay"},
	RoleChannel:   {"channel", "source", "platform"},
	RoleSeller:    {"seller", "vendor", "agent", "rep"},
	RoleBuyerName: {"name", "customer", "client", "buyer"},
	RoleEmail:     {"email", "mail", "contact"},
}

// Resolve returns the first header that case-insensitively contains one of
// the keywords as a substring. Keywords are tried in priority order and the
// scan stops at the first keyword that matches any header; within a keyword,
// headers are scanned in their original column order. The second return is
// false when no keyword matches.
func Resolve(headers []string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		for _, header := range headers {
			if strings.Contains(strings.ToLower(header), kw) {
				return header, true
			}
		}
	}
	return "", false
}

// ResolveRole resolves a semantic role against the headers using the role's
// keyword table.
func ResolveRole(headers []string, role Role) (string, bool) {
	return Resolve(headers, roleKeywords[role])
}

// Keywords returns the priority-ordered keyword list for a role. Exposed so
// callers (and tests) can inspect the resolution vocabulary without copying it.
func Keywords(role Role) []string {
	kws := roleKeywords[role]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
