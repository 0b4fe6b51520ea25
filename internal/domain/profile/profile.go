package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrInvalidEmail      = errors.New("email is not a valid address")
	ErrNameRequired      = errors.New("first_name and last_name are required")
	ErrNegativeSemester  = errors.New("degree_semester must not be negative")
	ErrDuplicateNetwork  = errors.New("a social network type may appear only once per profile")
	ErrProfileIDRequired = errors.New("profile id is required")
)

// Profile is a member's record. JobHistory holds the encoded form
// (see EncodeJobHistory); computed attributes live in computed.go.
type Profile struct {
	ID         int64   `json:"id"`
	IdentityID *string `json:"supertokens_id"`

	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Birthday       *time.Time `json:"birthday"`
	Nationality    *string    `json:"nationality"`
	Description    *string    `json:"description"`
	ActivityStatus *string    `json:"activity_status"`

	DegreeLevel                  *string    `json:"degree_level"`
	DegreeName                   *string    `json:"degree_name"`
	DegreeSemester               *int       `json:"degree_semester"`
	DegreeSemesterLastChangeDate *time.Time `json:"degree_semester_last_change_date"`
	University                   *string    `json:"university"`

	JobHistory        *string    `json:"job_history"`
	TimeJoined        *time.Time `json:"time_joined"`
	ProfilePictureURL *string    `json:"profile_picture_url"`

	SocialNetworks []SocialNetwork `json:"social_networks"`

	TimeCreated time.Time  `json:"time_created"`
	TimeUpdated *time.Time `json:"time_updated"`
}

// column limits of the profile table
var stringLimits = []struct {
	field string
	max   int
	get   func(p *Profile) *string
}{
	{"email", 200, func(p *Profile) *string { return &p.Email }},
	{"phone", 50, func(p *Profile) *string { return p.Phone }},
	{"first_name", 50, func(p *Profile) *string { return &p.FirstName }},
	{"last_name", 50, func(p *Profile) *string { return &p.LastName }},
	{"nationality", 100, func(p *Profile) *string { return p.Nationality }},
	{"description", 200, func(p *Profile) *string { return p.Description }},
	{"activity_status", 50, func(p *Profile) *string { return p.ActivityStatus }},
	{"degree_level", 20, func(p *Profile) *string { return p.DegreeLevel }},
	{"degree_name", 80, func(p *Profile) *string { return p.DegreeName }},
	{"university", 160, func(p *Profile) *string { return p.University }},
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return ErrNameRequired
	}
	for _, l := range stringLimits {
		if v := l.get(p); v != nil && utf8.RuneCountInString(*v) > l.max {
			return fmt.Errorf("%s must be at most %d characters", l.field, l.max)
		}
	}
	if p.DegreeSemester != nil && *p.DegreeSemester < 0 {
		return ErrNegativeSemester
	}

	seen := make(map[SocialNetworkType]bool, len(p.SocialNetworks))
	for i := range p.SocialNetworks {
		sn := &p.SocialNetworks[i]
		if err := sn.Validate(); err != nil {
			return err
		}
		if seen[sn.Type] {
			return ErrDuplicateNetwork
		}
		seen[sn.Type] = true
	}
	return nil
}

// Patch holds the fields of a partial update. Nil means "leave unchanged".
// SocialNetworks, when set, replaces the whole set.
type Patch struct {
	Email          *string
	Phone          *string
	FirstName      *string
	LastName       *string
	Birthday       *time.Time
	Nationality    *string
	Description    *string
	ActivityStatus *string
	DegreeLevel    *string
	DegreeName     *string
	DegreeSemester *int
	University     *string
	JobHistory     *[]JobHistoryElement
	TimeJoined     *time.Time
	SocialNetworks *[]SocialNetwork
}

// Apply copies the set fields of patch onto p. A changed degree semester
// stamps DegreeSemesterLastChangeDate with now.
func (p *Profile) Apply(patch Patch, now time.Time) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setOptional := func(dst **string, src *string) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}

	setString(&p.Email, patch.Email)
	setString(&p.FirstName, patch.FirstName)
	setString(&p.LastName, patch.LastName)
	setOptional(&p.Phone, patch.Phone)
	setOptional(&p.Nationality, patch.Nationality)
	setOptional(&p.Description, patch.Description)
	setOptional(&p.ActivityStatus, patch.ActivityStatus)
	setOptional(&p.DegreeLevel, patch.DegreeLevel)
	setOptional(&p.DegreeName, patch.DegreeName)
	setOptional(&p.University, patch.University)

	if patch.Birthday != nil {
		b := *patch.Birthday
		p.Birthday = &b
	}
	if patch.TimeJoined != nil {
		t := *patch.TimeJoined
		p.TimeJoined = &t
	}
	if patch.DegreeSemester != nil {
		if p.DegreeSemester == nil || *p.DegreeSemester != *patch.DegreeSemester {
			stamp := now
			p.DegreeSemesterLastChangeDate = &stamp
		}
		s := *patch.DegreeSemester
		p.DegreeSemester = &s
	}
	if patch.JobHistory != nil {
		p.JobHistory = EncodeJobHistory(*patch.JobHistory)
	}
	if patch.SocialNetworks != nil {
		networks := make([]SocialNetwork, len(*patch.SocialNetworks))
		for i, sn := range *patch.SocialNetworks {
			sn.ProfileID = p.ID
			networks[i] = sn
		}
		p.SocialNetworks = networks
	}
}

type Repository interface {
	// Create inserts p and its social networks in one transaction and sets p.ID.
	Create(ctx context.Context, p *Profile) error
	// CreateBatch inserts all profiles in one transaction: either all or none persist.
	CreateBatch(ctx context.Context, profiles []*Profile) error
	FindByID(ctx context.Context, id int64) (*Profile, error)
	FindByIdentityID(ctx context.Context, identityID string) (*Profile, error)
	List(ctx context.Context, limit, offset int) ([]*Profile, error)
	// Update rewrites p and replaces its social networks in one transaction.
	Update(ctx context.Context, p *Profile) error
	// Delete reports whether a profile was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteBatch returns the ids that existed and were removed.
	DeleteBatch(ctx context.Context, ids []int64) ([]int64, error)
	SetPictureURL(ctx context.Context, id int64, url string) error
}
