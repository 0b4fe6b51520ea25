package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validProfile() Profile {
	return Profile{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
}

func TestProfile_Validate(t *testing.T) {
	p := validProfile()
	require.NoError(t, p.Validate())

	p = validProfile()
	p.Email = ""
	assert.Equal(t, ErrEmailRequired, p.Validate())

	p = validProfile()
	p.Email = "not-an-email"
	assert.Equal(t, ErrInvalidEmail, p.Validate())

	p = validProfile()
	p.LastName = " "
	assert.Equal(t, ErrNameRequired, p.Validate())

	p = validProfile()
	p.DegreeLevel = strPtr("a very long degree level name")
	assert.EqualError(t, p.Validate(), "degree_level must be at most 20 characters")

	p = validProfile()
	p.DegreeSemester = intPtr(-1)
	assert.Equal(t, ErrNegativeSemester, p.Validate())
}

func TestSocialNetwork_HandleXorLink(t *testing.T) {
	tests := []struct {
		name   string
		handle *string
		link   *string
		ok     bool
	}{
		{name: "handle only", handle: strPtr("@ada"), ok: true},
		{name: "link only", link: strPtr("https://github.com/ada"), ok: true},
		{name: "both", handle: strPtr("@ada"), link: strPtr("https://github.com/ada")},
		{name: "neither"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := SocialNetwork{Type: SocialGitHub, Handle: tt.handle, Link: tt.link}
			err := sn.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, ErrHandleXorLink, err)
			}
		})
	}
}

func TestSocialNetwork_UnknownType(t *testing.T) {
	sn := SocialNetwork{Type: "MySpace", Handle: strPtr("x")}
	assert.Error(t, sn.Validate())
}

func TestProfile_Validate_DuplicateNetworkType(t *testing.T) {
	p := validProfile()
	p.SocialNetworks = []SocialNetwork{
		{Type: SocialSlack, Handle: strPtr("ada")},
		{Type: SocialSlack, Handle: strPtr("ada2")},
	}
	assert.Equal(t, ErrDuplicateNetwork, p.Validate())
}

func TestProfile_Apply(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	p := validProfile()
	p.ID = 9
	p.DegreeSemester = intPtr(3)

	p.Apply(Patch{
		FirstName:      strPtr("Augusta"),
		University:     strPtr("TUM"),
		DegreeSemester: intPtr(4),
		JobHistory:     &[]JobHistoryElement{DummyJobHistoryElement()},
		SocialNetworks: &[]SocialNetwork{{Type: SocialDiscord, Handle: strPtr("ada#1")}},
	}, now)

	assert.Equal(t, "Augusta", p.FirstName)
	assert.Equal(t, "Lovelace", p.LastName)
	assert.Equal(t, "TUM", *p.University)
	assert.Equal(t, 4, *p.DegreeSemester)
	require.NotNil(t, p.DegreeSemesterLastChangeDate)
	assert.Equal(t, now, *p.DegreeSemesterLastChangeDate)
	assert.Equal(t, "Google:SWE Intern:15.01.2023:31.03.2023", *p.JobHistory)
	require.Len(t, p.SocialNetworks, 1)
	assert.Equal(t, int64(9), p.SocialNetworks[0].ProfileID)
}

func TestProfile_Apply_SameSemesterKeepsStamp(t *testing.T) {
	p := validProfile()
	p.DegreeSemester = intPtr(3)

	p.Apply(Patch{DegreeSemester: intPtr(3)}, time.Now())
	assert.Nil(t, p.DegreeSemesterLastChangeDate)
}

func TestProfile_Apply_EmptyJobHistoryClears(t *testing.T) {
	p := validProfile()
	p.JobHistory = strPtr("A:B:C:D")

	p.Apply(Patch{JobHistory: &[]JobHistoryElement{}}, time.Now())
	assert.Nil(t, p.JobHistory)
}
