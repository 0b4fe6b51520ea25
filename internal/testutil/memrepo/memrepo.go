// Package memrepo holds in-memory repositories for tests. They mirror the
// constraints the Postgres schema enforces: unique keys, the social
// network handle/link check, and cascading profile deletes.
package memrepo

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
)

// Store backs all three repositories so profile deletes can cascade.
type Store struct {
	mu          sync.Mutex
	departments map[string]department.Department
	profiles    map[int64]profile.Profile
	memberships map[int64]membership.DepartmentMembership
	nextProfile int64
	nextMember  int64
	Now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		departments: make(map[string]department.Department),
		profiles:    make(map[int64]profile.Profile),
		memberships: make(map[int64]membership.DepartmentMembership),
		Now:         time.Now,
	}
}

func (s *Store) Departments() department.Repository { return departmentRepo{s} }
func (s *Store) Profiles() profile.Repository       { return profileRepo{s} }
func (s *Store) Memberships() membership.Repository { return membershipRepo{s} }

// ProfileCount is the number of stored profiles.
func (s *Store) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

type departmentRepo struct{ s *Store }

func (r departmentRepo) Save(_ context.Context, d *department.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[d.Handle]; ok {
		return apperror.NewConflict("department", "handle", d.Handle)
	}
	for _, existing := range r.s.departments {
		if existing.Name == d.Name {
			return apperror.NewConflict("department", "name", d.Name)
		}
	}
	r.s.departments[d.Handle] = *d
	return nil
}

func (r departmentRepo) FindByHandle(_ context.Context, handle string) (*department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.departments[handle]
	if !ok {
		return nil, apperror.NewNotFound("department", handle)
	}
	return &d, nil
}

func (r departmentRepo) List(_ context.Context) ([]*department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*department.Department, 0, len(r.s.departments))
	for _, d := range r.s.departments {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

type profileRepo struct{ s *Store }

func cloneProfile(p profile.Profile) *profile.Profile {
	networks := make([]profile.SocialNetwork, len(p.SocialNetworks))
	copy(networks, p.SocialNetworks)
	p.SocialNetworks = networks
	return &p
}

// check enforces the schema constraints for p against the stored rows and
// the other rows of the same batch. Callers hold the lock.
func (s *Store) check(p *profile.Profile, pending []*profile.Profile) error {
	for i := range p.SocialNetworks {
		sn := p.SocialNetworks[i]
		if (sn.Handle == nil) == (sn.Link == nil) {
			return apperror.NewInvalidInput("constraint handle_xor_link violated", profile.ErrHandleXorLink)
		}
	}
	if p.IdentityID == nil {
		return nil
	}
	taken := func(other *profile.Profile) bool {
		return other.ID != p.ID && other.IdentityID != nil && *other.IdentityID == *p.IdentityID
	}
	for _, other := range s.profiles {
		if taken(&other) {
			return apperror.NewConflict("profile", "supertokens_id", *p.IdentityID)
		}
	}
	for _, other := range pending {
		if other != p && other.IdentityID != nil && *other.IdentityID == *p.IdentityID {
			return apperror.NewConflict("profile", "supertokens_id", *p.IdentityID)
		}
	}
	return nil
}

func (s *Store) insert(p *profile.Profile) {
	s.nextProfile++
	p.ID = s.nextProfile
	p.TimeCreated = s.Now().UTC()
	for i := range p.SocialNetworks {
		p.SocialNetworks[i].ProfileID = p.ID
	}
	if p.SocialNetworks == nil {
		p.SocialNetworks = []profile.SocialNetwork{}
	}
	s.profiles[p.ID] = *cloneProfile(*p)
}

func (r profileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(p, nil); err != nil {
		return err
	}
	r.s.insert(p)
	return nil
}

func (r profileRepo) CreateBatch(_ context.Context, profiles []*profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range profiles {
		if err := r.s.check(p, profiles); err != nil {
			return err
		}
	}
	for _, p := range profiles {
		r.s.insert(p)
	}
	return nil
}

func (r profileRepo) FindByID(_ context.Context, id int64) (*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
	}
	return cloneProfile(p), nil
}

func (r profileRepo) FindByIdentityID(_ context.Context, identityID string) (*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.IdentityID != nil && *p.IdentityID == identityID {
			return cloneProfile(p), nil
		}
	}
	return nil, apperror.NewNotFound("profile", identityID)
}

func (r profileRepo) List(_ context.Context, limit, offset int) ([]*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.profiles))
	for id := range r.s.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*profile.Profile, 0, limit)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, cloneProfile(r.s.profiles[ids[i]]))
	}
	return out, nil
}

func (r profileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[p.ID]; !ok {
		return apperror.NewNotFound("profile", strconv.FormatInt(p.ID, 10))
	}
	if err := r.s.check(p, nil); err != nil {
		return err
	}
	now := r.s.Now().UTC()
	p.TimeUpdated = &now
	r.s.profiles[p.ID] = *cloneProfile(*p)
	return nil
}

// remove deletes a profile and its memberships. Callers hold the lock.
func (s *Store) remove(id int64) bool {
	if _, ok := s.profiles[id]; !ok {
		return false
	}
	delete(s.profiles, id)
	for mid, m := range s.memberships {
		if m.ProfileID == id {
			delete(s.memberships, mid)
		}
	}
	return true
}

func (r profileRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.remove(id), nil
}

func (r profileRepo) DeleteBatch(_ context.Context, ids []int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deleted := make([]int64, 0, len(ids))
	for _, id := range ids {
		if r.s.remove(id) {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (r profileRepo) SetPictureURL(_ context.Context, id int64, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
	}
	p.ProfilePictureURL = &url
	r.s.profiles[id] = p
	return nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) Create(_ context.Context, m *membership.DepartmentMembership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[m.ProfileID]; !ok {
		return apperror.NewInvalidInput("constraint department_membership_profile_id_fkey violated", nil)
	}
	if _, ok := r.s.departments[m.DepartmentHandle]; !ok {
		return apperror.NewInvalidInput("constraint department_membership_department_handle_fkey violated", nil)
	}
	r.s.nextMember++
	m.ID = r.s.nextMember
	r.s.memberships[m.ID] = *m
	return nil
}

func (r membershipRepo) filter(keep func(membership.DepartmentMembership) bool) []*membership.DepartmentMembership {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*membership.DepartmentMembership, 0)
	for _, m := range r.s.memberships {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r membershipRepo) ListByProfile(_ context.Context, profileID int64) ([]*membership.DepartmentMembership, error) {
	return r.filter(func(m membership.DepartmentMembership) bool { return m.ProfileID == profileID }), nil
}

func (r membershipRepo) ListByDepartment(_ context.Context, handle string) ([]*membership.DepartmentMembership, error) {
	return r.filter(func(m membership.DepartmentMembership) bool { return m.DepartmentHandle == handle }), nil
}

func (r membershipRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.memberships[id]; !ok {
		return apperror.NewNotFound("department membership", strconv.FormatInt(id, 10))
	}
	delete(r.s.memberships, id)
	return nil
}

// Publisher records published profile events.
type Publisher struct {
	mu     sync.Mutex
	events []event.ProfileEventPayload
	notify chan struct{}
}

func NewPublisher() *Publisher {
	return &Publisher{notify: make(chan struct{}, 64)}
}

func (p *Publisher) PublishProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	p.mu.Lock()
	p.events = append(p.events, payload)
	p.mu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []event.ProfileEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.ProfileEventPayload, len(p.events))
	copy(out, p.events)
	return out
}

// WaitFor blocks until n events have been published or the timeout passes.
func (p *Publisher) WaitFor(n int, timeout time.Duration) []event.ProfileEventPayload {
	deadline := time.After(timeout)
	for {
		if events := p.Events(); len(events) >= n {
			return events
		}
		select {
		case <-p.notify:
		case <-deadline:
			return p.Events()
		}
	}
}

// Uploader keeps uploaded bytes keyed by folder/publicID.
type Uploader struct {
	mu    sync.Mutex
	Files map[string][]byte
	Err   error
}

func NewUploader() *Uploader {
	return &Uploader{Files: make(map[string][]byte)}
}

func (u *Uploader) Upload(_ context.Context, file io.Reader, folder string, publicID string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	key := folder + "/" + publicID
	u.mu.Lock()
	u.Files[key] = data
	u.mu.Unlock()
	return "https://media.example.test/" + key, nil
}

func (u *Uploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for key := range u.Files {
		if key == publicID || strings.HasSuffix(key, "/"+publicID) {
			delete(u.Files, key)
		}
	}
	return nil
}
