package rbac

import "go-coverage/internal/employee"

// Permission is one resource/action pair granted to a role.
type Permission struct {
	Resource string
	Action   string
}

// DefaultPolicy lists what each role may do. Managers inherit everything an
// employee can do.
var DefaultPolicy = map[string][]Permission{
	employee.RoleEmployee: {
		{Resource: "employee", Action: "read"},
		{Resource: "leave", Action: "read"},
		{Resource: "leave", Action: "create"},
		{Resource: "assignment", Action: "read"},
		{Resource: "assignment", Action: "update"},
	},
	employee.RoleManager: {
		{Resource: "leave", Action: "escalate"},
		{Resource: "workload", Action: "update"},
	},
}

// RoleInheritance maps a role to the role it extends.
var RoleInheritance = map[string]string{
	employee.RoleManager: employee.RoleEmployee,
}
