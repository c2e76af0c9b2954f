package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-clinic/internal/domain/entity"
	"vet-clinic/internal/domain/repository"
	"vet-clinic/internal/service"
	"vet-clinic/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memAppointmentRepo is an in-memory appointment store with the same
// uniqueness rules as the appointments table.
type memAppointmentRepo struct {
	mu       sync.Mutex
	nextID   int
	rows     map[int]entity.Appointment
	surnames map[uuid.UUID]string

	createErr   error
	findErr     error
	statusCalls int
	updateCalls int
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{
		rows:     make(map[int]entity.Appointment),
		surnames: make(map[uuid.UUID]string),
	}
}

func inMinute(t, start time.Time) bool {
	from := start.Truncate(time.Minute)
	return !t.Before(from) && t.Before(from.Add(time.Minute))
}

func (r *memAppointmentRepo) violation(a *entity.Appointment) error {
	for id, row := range r.rows {
		if id == a.ID {
			continue
		}
		if row.DoctorID == a.DoctorID && row.StartTime.Equal(a.StartTime) {
			return repository.ErrDoctorSlotTaken
		}
		if row.UserID == a.UserID && row.Title == a.Title {
			return repository.ErrTitleTaken
		}
	}
	return nil
}

func (r *memAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if err := r.violation(a); err != nil {
		return err
	}
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = *a
	return nil
}

func (r *memAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if err := r.violation(a); err != nil {
		return err
	}
	r.rows[a.ID] = *a
	return nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id int, status entity.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCalls++
	row, ok := r.rows[id]
	if ok {
		row.Status = status
		r.rows[id] = row
	}
	return nil
}

func (r *memAppointmentRepo) DeleteByTitleAndUser(_ context.Context, title string, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if row.Title == title && row.UserID == userID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *memAppointmentRepo) ExistsByStartTimeAndDoctor(_ context.Context, startTime time.Time, doctorID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.DoctorID == doctorID && inMinute(row.StartTime, startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) ExistsByStartTimeAndUser(_ context.Context, startTime time.Time, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && inMinute(row.StartTime, startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) ExistsByTitleAndUser(_ context.Context, title string, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Title == title && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) FindByTitleAndUser(_ context.Context, title string, userID uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, row := range r.rows {
		if row.Title == title && row.UserID == userID {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindByTitleAndUserSurname(_ context.Context, title, surname string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Title == title && r.surnames[row.UserID] == surname {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindAllByUserFutureAndStatus(_ context.Context, userID uuid.UUID, status entity.AppointmentStatus, now time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, row := range r.rows {
		if row.UserID == userID && row.Status == status && row.StartTime.After(now) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memAppointmentRepo) FindAll(_ context.Context) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Appointment, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *memAppointmentRepo) FindStartTimesByDoctorBetween(_ context.Context, doctorID int, from, to time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for _, row := range r.rows {
		if row.DoctorID == doctorID && !row.StartTime.Before(from) && row.StartTime.Before(to) {
			out = append(out, row.StartTime)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// seed stores a row directly, bypassing the lifecycle rules.
func (r *memAppointmentRepo) seed(a entity.Appointment) entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.EndTime = a.StartTime.Add(entity.AppointmentDuration)
	if a.Status == "" {
		a.Status = entity.AppointmentStatusBooked
	}
	r.rows[a.ID] = a
	return a
}

type memDoctorRepo struct {
	doctors map[int]entity.Doctor
	nextID  int
}

func newMemDoctorRepo(doctors ...entity.Doctor) *memDoctorRepo {
	r := &memDoctorRepo{doctors: make(map[int]entity.Doctor)}
	for _, d := range doctors {
		r.doctors[d.ID] = d
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *memDoctorRepo) Create(_ context.Context, doctor *entity.Doctor) error {
	for _, d := range r.doctors {
		if strings.EqualFold(d.Email, doctor.Email) {
			return repository.ErrEmailTaken
		}
	}
	r.nextID++
	doctor.ID = r.nextID
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *memDoctorRepo) FindByID(_ context.Context, id int) (*entity.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memDoctorRepo) FindAll(_ context.Context) ([]entity.Doctor, error) {
	out := make([]entity.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDoctorRepo) FindAllByStatus(ctx context.Context, status entity.DoctorStatus) ([]entity.Doctor, error) {
	all, _ := r.FindAll(ctx)
	var out []entity.Doctor
	for _, d := range all {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDoctorRepo) UpdateStatus(_ context.Context, id int, status entity.DoctorStatus) (int64, error) {
	d, ok := r.doctors[id]
	if !ok || d.Status == status {
		return 0, nil
	}
	d.Status = status
	r.doctors[id] = d
	return 1, nil
}

type memPetRepo struct {
	pets   map[int]entity.Pet
	nextID int
}

func newMemPetRepo(pets ...entity.Pet) *memPetRepo {
	r := &memPetRepo{pets: make(map[int]entity.Pet)}
	for _, p := range pets {
		r.pets[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *memPetRepo) Create(_ context.Context, pet *entity.Pet) error {
	for _, p := range r.pets {
		if p.OwnerID == pet.OwnerID && p.Name == pet.Name {
			return repository.ErrPetNameTaken
		}
	}
	r.nextID++
	pet.ID = r.nextID
	r.pets[pet.ID] = *pet
	return nil
}

func (r *memPetRepo) FindByIDAndOwner(_ context.Context, id int, ownerID uuid.UUID) (*entity.Pet, error) {
	p, ok := r.pets[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return &p, nil
}

func (r *memPetRepo) FindByNameAndOwner(_ context.Context, name string, ownerID uuid.UUID) (*entity.Pet, error) {
	for _, p := range r.pets {
		if p.Name == name && p.OwnerID == ownerID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memPetRepo) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.Pet, error) {
	var out []entity.Pet
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPetRepo) FindAllByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status entity.PetStatus) ([]entity.Pet, error) {
	all, _ := r.FindAllByOwner(ctx, ownerID)
	var out []entity.Pet
	for _, p := range all {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPetRepo) UpdateStatus(_ context.Context, id int, status entity.PetStatus) error {
	p := r.pets[id]
	p.Status = status
	r.pets[id] = p
	return nil
}

type memUserRepo struct {
	users        map[uuid.UUID]entity.User
	softDeleteAt time.Time
}

func newMemUserRepo(users ...entity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) FindAllByStatus(_ context.Context, status entity.UserStatus) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id uuid.UUID, now time.Time) error {
	u := r.users[id]
	u.Status = entity.UserStatusDeleted
	r.users[id] = u
	r.softDeleteAt = now
	return nil
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) LogCreate(_ context.Context, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) LogUpdate(_ context.Context, _ *uuid.UUID, action, _, _ string, _, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) LogDelete(_ context.Context, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

type recordingPublisher struct {
	events []service.AppointmentEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event service.AppointmentEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

// stubLocker grants every lock unless held is set.
type stubLocker struct {
	held     bool
	released int
}

func (l *stubLocker) Lock(context.Context, int, time.Time) (func(), error) {
	if l.held {
		return nil, service.ErrSlotLocked
	}
	return func() { l.released++ }, nil
}

type memTokenStore struct {
	tokens map[string]bool
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]bool)}
}

func (s *memTokenStore) key(userID uuid.UUID, tokenID string, tokenType jwt.TokenType) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (s *memTokenStore) Store(_ context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, _ time.Duration) error {
	s.tokens[s.key(userID, tokenID, tokenType)] = true
	return nil
}

func (s *memTokenStore) Exists(_ context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	return s.tokens[s.key(userID, tokenID, tokenType)], nil
}

func (s *memTokenStore) Revoke(_ context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	delete(s.tokens, s.key(userID, tokenID, tokenType))
	return nil
}

func (s *memTokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	for k := range s.tokens {
		if strings.Contains(k, userID.String()) {
			delete(s.tokens, k)
		}
	}
	return nil
}
