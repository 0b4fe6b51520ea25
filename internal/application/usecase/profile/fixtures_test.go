package profile_test

import "github.com/tumai/space-api/internal/domain/department"

func departmentFixture() *department.Department {
	return &department.Department{Handle: "CS", Name: "Computer Science"}
}
