package department

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartment_Validate(t *testing.T) {
	long := strings.Repeat("x", MaxDescriptionLength+1)

	tests := []struct {
		name string
		dep  Department
		want error
	}{
		{name: "valid", dep: Department{Handle: "CS", Name: "Computer Science"}},
		{name: "empty handle", dep: Department{Handle: "", Name: "Computer Science"}, want: ErrInvalidHandle},
		{name: "handle with space", dep: Department{Handle: "C S", Name: "Computer Science"}, want: ErrInvalidHandle},
		{name: "handle too long", dep: Department{Handle: strings.Repeat("a", 21), Name: "x"}, want: ErrInvalidHandle},
		{name: "blank name", dep: Department{Handle: "CS", Name: "  "}, want: ErrInvalidName},
		{name: "description too long", dep: Department{Handle: "CS", Name: "CS", Description: &long}, want: ErrDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dep.Validate())
		})
	}
}
