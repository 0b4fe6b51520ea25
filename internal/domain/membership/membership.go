package membership

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Role string

const (
	RoleTeamlead  Role = "Teamlead"
	RolePresident Role = "President"
	RoleMember    Role = "Member"
	RoleAlumni    Role = "Alumni"
	RoleApplicant Role = "Applicant"
)

var Roles = []Role{RoleTeamlead, RolePresident, RoleMember, RoleAlumni, RoleApplicant}

var (
	ErrProfileRequired    = errors.New("membership needs a profile")
	ErrDepartmentRequired = errors.New("membership needs a department handle")
)

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DepartmentMembership links a profile to a department. TimeFrom and TimeTo
// are independent; no ordering between them is enforced.
type DepartmentMembership struct {
	ID               int64      `json:"id"`
	ProfileID        int64      `json:"profile_id"`
	DepartmentHandle string     `json:"department_handle"`
	Role             Role       `json:"role"`
	TimeFrom         *time.Time `json:"time_from"`
	TimeTo           *time.Time `json:"time_to"`
}

func (m *DepartmentMembership) Validate() error {
	if m.ProfileID <= 0 {
		return ErrProfileRequired
	}
	if m.DepartmentHandle == "" {
		return ErrDepartmentRequired
	}
	_, err := ParseRole(string(m.Role))
	return err
}

type Repository interface {
	Create(ctx context.Context, m *DepartmentMembership) error
	ListByProfile(ctx context.Context, profileID int64) ([]*DepartmentMembership, error)
	ListByDepartment(ctx context.Context, handle string) ([]*DepartmentMembership, error)
	Delete(ctx context.Context, id int64) error
}
