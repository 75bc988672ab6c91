// Package seed bootstraps the employee directory from a YAML file.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go-coverage/internal/employee"
	"go-coverage/internal/notifier"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed employees.yaml
var defaultDirectory []byte

type Entry struct {
	EmployeeID      string   `yaml:"employee_id"`
	Name            string   `yaml:"name"`
	Position        string   `yaml:"position"`
	Department      string   `yaml:"department"`
	Phone           string   `yaml:"phone"`
	Email           string   `yaml:"email"`
	Password        string   `yaml:"password"`
	Role            string   `yaml:"role"`
	CurrentWorkload int      `yaml:"current_workload"`
	Skills          []string `yaml:"skills"`
	CanCover        []string `yaml:"can_cover"`
}

type Directory struct {
	Employees []Entry `yaml:"employees"`
}

// Parse decodes and validates a directory payload.
func Parse(data []byte) (Directory, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Directory{}, fmt.Errorf("seed: directory payload is empty")
	}
	var dir Directory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return Directory{}, fmt.Errorf("seed: decode directory: %w", err)
	}
	if err := dir.Validate(); err != nil {
		return Directory{}, err
	}
	return dir, nil
}

// Load reads path, or the embedded default directory when path is empty.
func Load(path string) (Directory, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultDirectory)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Directory{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	dir, err := Parse(data)
	if err != nil {
		return Directory{}, fmt.Errorf("seed: %s: %w", path, err)
	}
	return dir, nil
}

func (d Directory) Validate() error {
	if len(d.Employees) == 0 {
		return fmt.Errorf("seed: directory has no employees")
	}
	seen := make(map[string]bool, len(d.Employees))
	for i, e := range d.Employees {
		id := strings.TrimSpace(e.EmployeeID)
		switch {
		case id == "":
			return fmt.Errorf("seed: employee %d: employee_id is required", i)
		case seen[id]:
			return fmt.Errorf("seed: duplicate employee_id %s", id)
		case strings.TrimSpace(e.Name) == "":
			return fmt.Errorf("seed: %s: name is required", id)
		case strings.TrimSpace(e.Position) == "" || strings.TrimSpace(e.Department) == "":
			return fmt.Errorf("seed: %s: position and department are required", id)
		case e.Password == "":
			return fmt.Errorf("seed: %s: password is required", id)
		case e.CurrentWorkload < 0 || e.CurrentWorkload > employee.MaxConcurrentLoad:
			return fmt.Errorf("seed: %s: current_workload must be between 0 and %d", id, employee.MaxConcurrentLoad)
		}
		if _, err := notifier.NormalizePhone(e.Phone); err != nil {
			return fmt.Errorf("seed: %s: %w", id, err)
		}
		switch strings.ToUpper(strings.TrimSpace(e.Role)) {
		case "", employee.RoleEmployee, employee.RoleManager:
		default:
			return fmt.Errorf("seed: %s: unknown role %q", id, e.Role)
		}
		seen[id] = true
	}
	return nil
}

// ToEmployees hashes every password with the given bcrypt cost.
func (d Directory) ToEmployees(cost int) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(d.Employees))
	for _, e := range d.Employees {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("seed: hash password for %s: %w", e.EmployeeID, err)
		}
		phone, _ := notifier.NormalizePhone(e.Phone)
		role := strings.ToUpper(strings.TrimSpace(e.Role))
		if role == "" {
			role = employee.RoleEmployee
		}
		out = append(out, employee.Employee{
			EmployeeID:      strings.TrimSpace(e.EmployeeID),
			Name:            strings.TrimSpace(e.Name),
			Position:        strings.TrimSpace(e.Position),
			Department:      strings.TrimSpace(e.Department),
			Phone:           phone,
			Email:           strings.ToLower(strings.TrimSpace(e.Email)),
			PasswordHash:    string(hash),
			Role:            role,
			CurrentWorkload: e.CurrentWorkload,
			Skills:          e.Skills,
			CanCover:        e.CanCover,
		})
	}
	return out, nil
}
