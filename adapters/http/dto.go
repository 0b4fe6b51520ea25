package http

import (
	"time"

	departmentUC "github.com/tumai/space-api/internal/application/usecase/department"
	membershipUC "github.com/tumai/space-api/internal/application/usecase/membership"
	profileUC "github.com/tumai/space-api/internal/application/usecase/profile"
	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
)

// Request bodies carry their payload under "data".
type dataBody[T any] struct {
	Data T `json:"data" binding:"required"`
}

type dataListBody[T any] struct {
	Data []T `json:"data" binding:"required,dive"`
}

// Department DTOs

type DepartmentIn struct {
	Handle      string  `json:"handle" binding:"required,max=20"`
	Name        string  `json:"name" binding:"required,max=80"`
	Description *string `json:"description" binding:"omitempty,max=2048"`
}

func (in DepartmentIn) toInput() departmentUC.CreateDepartmentInput {
	return departmentUC.CreateDepartmentInput{Handle: in.Handle, Name: in.Name, Description: in.Description}
}

type DepartmentOut struct {
	Handle      string  `json:"handle"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func ToDepartmentOut(d *department.Department) DepartmentOut {
	return DepartmentOut{Handle: d.Handle, Name: d.Name, Description: d.Description}
}

func DummyDepartmentOut() DepartmentOut {
	desc := "Builds the member platform and internal tooling"
	return DepartmentOut{Handle: "DEV", Name: "Software Development", Description: &desc}
}

// Membership DTOs

type MembershipIn struct {
	DepartmentHandle string     `json:"department_handle" binding:"required,max=20"`
	Role             string     `json:"role" binding:"required,oneof=Teamlead President Member Alumni Applicant"`
	TimeFrom         *time.Time `json:"time_from"`
	TimeTo           *time.Time `json:"time_to"`
}

func (in MembershipIn) toInput(profileID int64) membershipUC.AddMembershipInput {
	return membershipUC.AddMembershipInput{
		ProfileID:        profileID,
		DepartmentHandle: in.DepartmentHandle,
		Role:             in.Role,
		TimeFrom:         in.TimeFrom,
		TimeTo:           in.TimeTo,
	}
}

type MembershipOut struct {
	ID               int64      `json:"id"`
	ProfileID        int64      `json:"profile_id"`
	DepartmentHandle string     `json:"department_handle"`
	Role             string     `json:"role"`
	TimeFrom         *time.Time `json:"time_from"`
	TimeTo           *time.Time `json:"time_to"`
}

func ToMembershipOut(m *membership.DepartmentMembership) MembershipOut {
	return MembershipOut{
		ID:               m.ID,
		ProfileID:        m.ProfileID,
		DepartmentHandle: m.DepartmentHandle,
		Role:             string(m.Role),
		TimeFrom:         m.TimeFrom,
		TimeTo:           m.TimeTo,
	}
}

func toMembershipOuts(ms []*membership.DepartmentMembership) []MembershipOut {
	out := make([]MembershipOut, len(ms))
	for i, m := range ms {
		out[i] = ToMembershipOut(m)
	}
	return out
}

func DummyMembershipOut() MembershipOut {
	from := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
	return MembershipOut{ID: 1, ProfileID: 1, DepartmentHandle: "DEV", Role: string(membership.RoleMember), TimeFrom: &from}
}

// Profile DTOs

type SocialNetworkDTO struct {
	Type   string  `json:"type" binding:"required,oneof=Slack LinkedIn GitHub Phone Instagram Telegram Discord Other"`
	Handle *string `json:"handle" binding:"omitempty,max=40"`
	Link   *string `json:"link" binding:"omitempty,max=1024"`
}

type JobHistoryElementDTO struct {
	Employer string `json:"employer"`
	Position string `json:"position"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

type ProfileInCreate struct {
	SupertokensID  *string                `json:"supertokens_id"`
	Email          string                 `json:"email" binding:"required,email,max=200"`
	Phone          *string                `json:"phone" binding:"omitempty,max=50"`
	FirstName      string                 `json:"first_name" binding:"required,max=50"`
	LastName       string                 `json:"last_name" binding:"required,max=50"`
	Birthday       *time.Time             `json:"birthday"`
	Nationality    *string                `json:"nationality" binding:"omitempty,max=100"`
	Description    *string                `json:"description" binding:"omitempty,max=200"`
	ActivityStatus *string                `json:"activity_status" binding:"omitempty,max=50"`
	DegreeLevel    *string                `json:"degree_level" binding:"omitempty,max=20"`
	DegreeName     *string                `json:"degree_name" binding:"omitempty,max=80"`
	DegreeSemester *int                   `json:"degree_semester" binding:"omitempty,min=0"`
	University     *string                `json:"university" binding:"omitempty,max=160"`
	JobHistory     []JobHistoryElementDTO `json:"job_history"`
	TimeJoined     *time.Time             `json:"time_joined"`
	SocialNetworks []SocialNetworkDTO     `json:"social_networks" binding:"dive"`
}

type ProfileInUpdate struct {
	Email          *string                 `json:"email" binding:"omitempty,email,max=200"`
	Phone          *string                 `json:"phone" binding:"omitempty,max=50"`
	FirstName      *string                 `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName       *string                 `json:"last_name" binding:"omitempty,min=1,max=50"`
	Birthday       *time.Time              `json:"birthday"`
	Nationality    *string                 `json:"nationality" binding:"omitempty,max=100"`
	Description    *string                 `json:"description" binding:"omitempty,max=200"`
	ActivityStatus *string                 `json:"activity_status" binding:"omitempty,max=50"`
	DegreeLevel    *string                 `json:"degree_level" binding:"omitempty,max=20"`
	DegreeName     *string                 `json:"degree_name" binding:"omitempty,max=80"`
	DegreeSemester *int                    `json:"degree_semester" binding:"omitempty,min=0"`
	University     *string                 `json:"university" binding:"omitempty,max=160"`
	JobHistory     *[]JobHistoryElementDTO `json:"job_history"`
	TimeJoined     *time.Time              `json:"time_joined"`
	SocialNetworks *[]SocialNetworkDTO     `json:"social_networks" binding:"omitempty,dive"`
}

func toJobHistory(dtos []JobHistoryElementDTO) []profile.JobHistoryElement {
	out := make([]profile.JobHistoryElement, len(dtos))
	for i, j := range dtos {
		out[i] = profile.JobHistoryElement{Employer: j.Employer, Position: j.Position, DateFrom: j.DateFrom, DateTo: j.DateTo}
	}
	return out
}

func toSocialNetworks(dtos []SocialNetworkDTO) []profile.SocialNetwork {
	out := make([]profile.SocialNetwork, len(dtos))
	for i, sn := range dtos {
		out[i] = profile.SocialNetwork{Type: profile.SocialNetworkType(sn.Type), Handle: sn.Handle, Link: sn.Link}
	}
	return out
}

func (in ProfileInCreate) toInput() profileUC.CreateProfileInput {
	return profileUC.CreateProfileInput{
		IdentityID:     in.SupertokensID,
		Email:          in.Email,
		Phone:          in.Phone,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Birthday:       in.Birthday,
		Nationality:    in.Nationality,
		Description:    in.Description,
		ActivityStatus: in.ActivityStatus,
		DegreeLevel:    in.DegreeLevel,
		DegreeName:     in.DegreeName,
		DegreeSemester: in.DegreeSemester,
		University:     in.University,
		JobHistory:     toJobHistory(in.JobHistory),
		TimeJoined:     in.TimeJoined,
		SocialNetworks: toSocialNetworks(in.SocialNetworks),
	}
}

func (in ProfileInUpdate) toPatch() profile.Patch {
	patch := profile.Patch{
		Email:          in.Email,
		Phone:          in.Phone,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Birthday:       in.Birthday,
		Nationality:    in.Nationality,
		Description:    in.Description,
		ActivityStatus: in.ActivityStatus,
		DegreeLevel:    in.DegreeLevel,
		DegreeName:     in.DegreeName,
		DegreeSemester: in.DegreeSemester,
		University:     in.University,
		TimeJoined:     in.TimeJoined,
	}
	if in.JobHistory != nil {
		jobs := toJobHistory(*in.JobHistory)
		patch.JobHistory = &jobs
	}
	if in.SocialNetworks != nil {
		networks := toSocialNetworks(*in.SocialNetworks)
		patch.SocialNetworks = &networks
	}
	return patch
}

// ProfileOut is the internally visible profile.
type ProfileOut struct {
	ID                           int64                  `json:"id"`
	SupertokensID                *string                `json:"supertokens_id"`
	Email                        string                 `json:"email"`
	Phone                        *string                `json:"phone"`
	FirstName                    string                 `json:"first_name"`
	LastName                     string                 `json:"last_name"`
	FullName                     string                 `json:"full_name"`
	Birthday                     *time.Time             `json:"birthday"`
	Nationality                  *string                `json:"nationality"`
	Description                  *string                `json:"description"`
	ActivityStatus               *string                `json:"activity_status"`
	DegreeLevel                  *string                `json:"degree_level"`
	DegreeName                   *string                `json:"degree_name"`
	DegreeSemester               *int                   `json:"degree_semester"`
	DegreeSemesterLastChangeDate *time.Time             `json:"degree_semester_last_change_date"`
	University                   *string                `json:"university"`
	JobHistory                   []JobHistoryElementDTO `json:"job_history"`
	TimeJoined                   *time.Time             `json:"time_joined"`
	TumAiSemester                *int                   `json:"tum_ai_semester"`
	ProfilePictureURL            *string                `json:"profile_picture_url"`
	SocialNetworks               []SocialNetworkDTO     `json:"social_networks"`
	Memberships                  []MembershipOut        `json:"department_memberships,omitempty"`
	TimeCreated                  time.Time              `json:"time_created"`
	TimeUpdated                  *time.Time             `json:"time_updated"`
}

// ProfileOutPublic leaves out contact data, the birthday and the identity id.
type ProfileOutPublic struct {
	ID                int64                  `json:"id"`
	FirstName         string                 `json:"first_name"`
	LastName          string                 `json:"last_name"`
	FullName          string                 `json:"full_name"`
	Nationality       *string                `json:"nationality"`
	Description       *string                `json:"description"`
	ActivityStatus    *string                `json:"activity_status"`
	DegreeLevel       *string                `json:"degree_level"`
	DegreeName        *string                `json:"degree_name"`
	DegreeSemester    *int                   `json:"degree_semester"`
	University        *string                `json:"university"`
	JobHistory        []JobHistoryElementDTO `json:"job_history"`
	TimeJoined        *time.Time             `json:"time_joined"`
	TumAiSemester     *int                   `json:"tum_ai_semester"`
	ProfilePictureURL *string                `json:"profile_picture_url"`
	SocialNetworks    []SocialNetworkDTO     `json:"social_networks"`
}

// profilePresenter turns domain profiles into response DTOs. The computed
// fields depend on the clock and on the job history decoding switch.
type profilePresenter struct {
	decodeJobHistory bool
	now              func() time.Time
}

func (pp profilePresenter) jobHistory(p *profile.Profile) []JobHistoryElementDTO {
	decoded := profile.DecodedJobHistory(*p, pp.decodeJobHistory)
	out := make([]JobHistoryElementDTO, len(decoded))
	for i, j := range decoded {
		out[i] = JobHistoryElementDTO{Employer: j.Employer, Position: j.Position, DateFrom: j.DateFrom, DateTo: j.DateTo}
	}
	return out
}

func socialNetworkDTOs(networks []profile.SocialNetwork) []SocialNetworkDTO {
	out := make([]SocialNetworkDTO, len(networks))
	for i, sn := range networks {
		out[i] = SocialNetworkDTO{Type: string(sn.Type), Handle: sn.Handle, Link: sn.Link}
	}
	return out
}

func (pp profilePresenter) ToProfileOut(p *profile.Profile, ms []*membership.DepartmentMembership) ProfileOut {
	out := ProfileOut{
		ID:                           p.ID,
		SupertokensID:                p.IdentityID,
		Email:                        p.Email,
		Phone:                        p.Phone,
		FirstName:                    p.FirstName,
		LastName:                     p.LastName,
		FullName:                     profile.FullName(*p),
		Birthday:                     p.Birthday,
		Nationality:                  p.Nationality,
		Description:                  p.Description,
		ActivityStatus:               p.ActivityStatus,
		DegreeLevel:                  p.DegreeLevel,
		DegreeName:                   p.DegreeName,
		DegreeSemester:               p.DegreeSemester,
		DegreeSemesterLastChangeDate: p.DegreeSemesterLastChangeDate,
		University:                   p.University,
		JobHistory:                   pp.jobHistory(p),
		TimeJoined:                   p.TimeJoined,
		TumAiSemester:                profile.SemesterCount(*p, pp.now()),
		ProfilePictureURL:            p.ProfilePictureURL,
		SocialNetworks:               socialNetworkDTOs(p.SocialNetworks),
		TimeCreated:                  p.TimeCreated,
		TimeUpdated:                  p.TimeUpdated,
	}
	if ms != nil {
		out.Memberships = toMembershipOuts(ms)
	}
	return out
}

func (pp profilePresenter) ToProfileOutPublic(p *profile.Profile) ProfileOutPublic {
	return ProfileOutPublic{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		FullName:          profile.FullName(*p),
		Nationality:       p.Nationality,
		Description:       p.Description,
		ActivityStatus:    p.ActivityStatus,
		DegreeLevel:       p.DegreeLevel,
		DegreeName:        p.DegreeName,
		DegreeSemester:    p.DegreeSemester,
		University:        p.University,
		JobHistory:        pp.jobHistory(p),
		TimeJoined:        p.TimeJoined,
		TumAiSemester:     profile.SemesterCount(*p, pp.now()),
		ProfilePictureURL: p.ProfilePictureURL,
		SocialNetworks:    socialNetworkDTOs(p.SocialNetworks),
	}
}

func dummyProfile() *profile.Profile {
	joined := time.Date(2022, time.October, 1, 0, 0, 0, 0, time.UTC)
	birthday := time.Date(2000, time.May, 17, 0, 0, 0, 0, time.UTC)
	semester := 5
	str := func(s string) *string { return &s }
	return &profile.Profile{
		ID:             1,
		IdentityID:     str("a1b2c3d4-0000-4000-8000-000000000001"),
		Email:          "max.mustermann@tum-ai.com",
		Phone:          str("+49 89 1234567"),
		FirstName:      "Max",
		LastName:       "Mustermann",
		Birthday:       &birthday,
		Nationality:    str("German"),
		Description:    str("Passionate about machine learning"),
		ActivityStatus: str("active"),
		DegreeLevel:    str("M.Sc."),
		DegreeName:     str("Informatics"),
		DegreeSemester: &semester,
		University:     str("TUM"),
		JobHistory:     profile.EncodeJobHistory([]profile.JobHistoryElement{profile.DummyJobHistoryElement()}),
		TimeJoined:     &joined,
		SocialNetworks: []profile.SocialNetwork{
			{ProfileID: 1, Type: profile.SocialGitHub, Handle: str("maxmustermann")},
			{ProfileID: 1, Type: profile.SocialLinkedIn, Link: str("https://www.linkedin.com/in/maxmustermann")},
		},
		TimeCreated: joined,
	}
}

var dummyPresenter = profilePresenter{decodeJobHistory: true, now: time.Now}

func DummyProfileOut() ProfileOut {
	m := DummyMembershipOut()
	out := dummyPresenter.ToProfileOut(dummyProfile(), nil)
	out.Memberships = []MembershipOut{m}
	return out
}

func DummyProfileOutPublic() ProfileOutPublic {
	return dummyPresenter.ToProfileOutPublic(dummyProfile())
}
