package coverage_test

import (
	"fmt"
	"slices"
	"testing"

	"go-coverage/internal/coverage"
	"go-coverage/internal/employee"

	"github.com/stretchr/testify/assert"
)

func emp(id, position, department string, workload int, canCover ...string) employee.Employee {
	return employee.Employee{
		EmployeeID:      id,
		Name:            "Employee " + id,
		Position:        position,
		Department:      department,
		CurrentWorkload: workload,
		CanCover:        canCover,
	}
}

func TestSelect_ExactMatchBeatsLowerWorkloadFallbacks(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "Senior Developer", "Engineering", 3),
		emp("E2", "Junior Developer", "Engineering", 1),
		emp("E8", "Senior Developer", "Engineering", 2),
	}

	m, ok := coverage.Select(pool, coverage.Criteria{
		Position:   "Senior Developer",
		Department: "Engineering",
		ExcludeID:  "E1",
	})

	assert.True(t, ok)
	assert.Equal(t, "E8", m.Employee.EmployeeID)
	assert.Equal(t, coverage.TierExact, m.Tier)
}

func TestSelect_ExactTierPicksMinimumWorkload(t *testing.T) {
	pool := []employee.Employee{
		emp("E3", "QA Engineer", "Engineering", 4),
		emp("E4", "QA Engineer", "Engineering", 1),
		emp("E5", "QA Engineer", "Engineering", 2),
	}

	m, ok := coverage.Select(pool, coverage.Criteria{Position: "QA Engineer", Department: "Engineering", ExcludeID: "E9"})

	assert.True(t, ok)
	assert.Equal(t, "E4", m.Employee.EmployeeID)
}

func TestSelect_FlexibleBeforeDepartment(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "UI/UX Designer", "Design", 3),
		emp("E4", "Graphic Designer", "Design", 0),
		emp("E9", "Frontend Developer", "Engineering", 3, "UI/UX Designer"),
	}

	m, ok := coverage.Select(pool, coverage.Criteria{Position: "UI/UX Designer", Department: "Design", ExcludeID: "E1"})

	assert.True(t, ok)
	assert.Equal(t, "E9", m.Employee.EmployeeID)
	assert.Equal(t, coverage.TierFlexible, m.Tier)
}

func TestSelect_FlexibleUsesSetMembershipNotSubstring(t *testing.T) {
	pool := []employee.Employee{
		emp("E2", "Analyst", "Finance", 0, "Senior Developer Lead"),
	}

	_, ok := coverage.Select(pool, coverage.Criteria{Position: "Senior Developer", Department: "Engineering", ExcludeID: "E1"})

	assert.False(t, ok)
}

func TestSelect_DepartmentalFallbackAtWorkloadFour(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "Project Manager", "Management", 2),
		emp("E7", "Scrum Master", "Management", 4),
		emp("E8", "Senior Developer", "Engineering", 0),
	}

	m, ok := coverage.Select(pool, coverage.Criteria{Position: "Project Manager", Department: "Management", ExcludeID: "E1"})

	assert.True(t, ok)
	assert.Equal(t, "E7", m.Employee.EmployeeID)
	assert.Equal(t, coverage.TierDepartment, m.Tier)
}

func TestSelect_NobodyUnderCap(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "Senior Developer", "Engineering", 3),
		emp("E2", "Senior Developer", "Engineering", 5),
		emp("E3", "Junior Developer", "Engineering", 5, "Senior Developer"),
		emp("E4", "QA Engineer", "Engineering", 7),
	}

	_, ok := coverage.Select(pool, coverage.Criteria{Position: "Senior Developer", Department: "Engineering", ExcludeID: "E1"})

	assert.False(t, ok)
}

func TestSelect_NeverSelfAssigns(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "Senior Developer", "Engineering", 0, "Senior Developer"),
	}

	_, ok := coverage.Select(pool, coverage.Criteria{Position: "Senior Developer", Department: "Engineering", ExcludeID: "E1"})

	assert.False(t, ok)
}

func TestSelect_TieBreakIsAscendingID(t *testing.T) {
	pool := []employee.Employee{
		emp("E7", "Designer", "Design", 1),
		emp("E3", "Designer", "Design", 1),
		emp("E5", "Designer", "Design", 1),
	}

	for i := 0; i < 3; i++ {
		rotated := slices.Concat(pool[i:], pool[:i])
		m, ok := coverage.Select(rotated, coverage.Criteria{Position: "Designer", Department: "Design"})
		assert.True(t, ok)
		assert.Equal(t, "E3", m.Employee.EmployeeID)
	}
}

// Exhaustive check over small synthetic directories: the winner always
// satisfies the tier rules and is never self or at the cap.
func TestSelect_Properties(t *testing.T) {
	positions := []string{"Dev", "QA", "Ops"}
	departments := []string{"Eng", "Biz"}

	for seed := 0; seed < 200; seed++ {
		var pool []employee.Employee
		for i := 0; i < 6; i++ {
			n := seed*7 + i*13
			e := emp(
				fmt.Sprintf("E%02d", i),
				positions[n%len(positions)],
				departments[(n/3)%len(departments)],
				(n/5)%7,
			)
			if n%4 == 0 {
				e.CanCover = []string{positions[(n+1)%len(positions)]}
			}
			pool = append(pool, e)
		}
		c := coverage.Criteria{Position: "Dev", Department: "Eng", ExcludeID: "E00"}

		m, ok := coverage.Select(pool, c)
		ranked := coverage.Rank(pool, c)
		if !ok {
			assert.Empty(t, ranked)
			continue
		}

		assert.NotEqual(t, c.ExcludeID, m.Employee.EmployeeID)
		assert.Less(t, m.Employee.CurrentWorkload, employee.MaxConcurrentLoad)
		assert.Equal(t, ranked[0], m)

		hasExact := false
		for _, e := range pool {
			if e.EmployeeID != c.ExcludeID && e.CurrentWorkload < employee.MaxConcurrentLoad &&
				e.Position == c.Position && e.Department == c.Department {
				hasExact = true
				assert.LessOrEqual(t, m.Employee.CurrentWorkload, e.CurrentWorkload)
			}
		}
		if hasExact {
			assert.Equal(t, coverage.TierExact, m.Tier)
		}
	}
}

func TestRank_OrdersByTierThenWorkload(t *testing.T) {
	pool := []employee.Employee{
		emp("E1", "Dev", "Eng", 0),
		emp("E2", "QA", "Eng", 0),
		emp("E3", "Dev", "Eng", 2),
		emp("E4", "Ops", "Biz", 1, "Dev"),
		emp("E5", "Dev", "Eng", 1),
	}

	ranked := coverage.Rank(pool, coverage.Criteria{Position: "Dev", Department: "Eng", ExcludeID: "E1"})

	ids := make([]string, 0, len(ranked))
	for _, m := range ranked {
		ids = append(ids, m.Employee.EmployeeID)
	}
	assert.Equal(t, []string{"E5", "E3", "E4", "E2"}, ids)
	assert.Equal(t, coverage.TierFlexible, ranked[2].Tier)
	assert.Equal(t, coverage.TierDepartment, ranked[3].Tier)
}
