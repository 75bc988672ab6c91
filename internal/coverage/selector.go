// Package coverage picks the employee who covers a colleague's leave.
//
// Candidates are matched in three tiers, loosest last:
//
//	EXACT       same position and same department
//	FLEXIBLE    position listed in the candidate's can_cover set
//	DEPARTMENT  same department, any position
//
// The first tier with at least one eligible employee wins. Inside a tier the
// lowest workload wins and ties go to the smallest employee_id.
package coverage

import (
	"cmp"
	"slices"

	"go-coverage/internal/employee"
)

type Tier string

const (
	TierExact      Tier = "EXACT"
	TierFlexible   Tier = "FLEXIBLE"
	TierDepartment Tier = "DEPARTMENT"
)

// Criteria describes the employee who needs cover.
type Criteria struct {
	Position   string
	Department string
	ExcludeID  string
}

type Match struct {
	Employee employee.Employee
	Tier     Tier
}

type tierRule struct {
	tier  Tier
	match func(e employee.Employee, c Criteria) bool
}

var tiers = []tierRule{
	{
		tier: TierExact,
		match: func(e employee.Employee, c Criteria) bool {
			return e.Position == c.Position && e.Department == c.Department
		},
	},
	{
		tier: TierFlexible,
		match: func(e employee.Employee, c Criteria) bool {
			return e.CanCoverPosition(c.Position)
		},
	},
	{
		tier: TierDepartment,
		match: func(e employee.Employee, c Criteria) bool {
			return e.Department == c.Department
		},
	},
}

// Select returns the best cover for c from pool, or false when no tier has an
// eligible employee. The pool is not modified.
func Select(pool []employee.Employee, c Criteria) (Match, bool) {
	for _, rule := range tiers {
		var (
			best  employee.Employee
			found bool
		)
		for _, e := range pool {
			if !eligible(e, c) || !rule.match(e, c) {
				continue
			}
			if !found || better(e, best) {
				best, found = e, true
			}
		}
		if found {
			return Match{Employee: best, Tier: rule.tier}, true
		}
	}
	return Match{}, false
}

// Rank lists every eligible employee for c in the order Select would try
// them: by tier, then workload, then employee_id. An employee appears once,
// under the first tier that matches.
func Rank(pool []employee.Employee, c Criteria) []Match {
	seen := make(map[string]struct{}, len(pool))
	var ranked []Match
	for _, rule := range tiers {
		var group []employee.Employee
		for _, e := range pool {
			if _, ok := seen[e.EmployeeID]; ok {
				continue
			}
			if eligible(e, c) && rule.match(e, c) {
				group = append(group, e)
				seen[e.EmployeeID] = struct{}{}
			}
		}
		slices.SortFunc(group, compare)
		for _, e := range group {
			ranked = append(ranked, Match{Employee: e, Tier: rule.tier})
		}
	}
	return ranked
}

func eligible(e employee.Employee, c Criteria) bool {
	return e.EmployeeID != c.ExcludeID && e.HasCapacity()
}

func better(a, b employee.Employee) bool {
	return compare(a, b) < 0
}

func compare(a, b employee.Employee) int {
	return cmp.Or(
		cmp.Compare(a.CurrentWorkload, b.CurrentWorkload),
		cmp.Compare(a.EmployeeID, b.EmployeeID),
	)
}
