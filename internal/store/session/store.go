// Package session owns the current actor, the fixed actor directory and
// the authorization predicates consulted by the other stores.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// ActorSpec is the payload for creating a new directory entry.
type ActorSpec struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Role       models.Role
	BusinessID string
}

type Store struct {
	mu          sync.RWMutex
	actors      []models.Actor
	credentials map[string]string // lowercased email -> password
	current     *models.Actor
	protected   map[string]bool // seeded ids, cannot be modified or deleted
	superAdmin  string          // id of the one super-admin
	log         logger.Logger
	now         func() time.Time
}

// New builds the directory from the seed configuration. The super-admin
// always exists; admins and business actors are optional.
func New(seed config.SeedConfig, log logger.Logger) *Store {
	s := &Store{
		credentials: make(map[string]string),
		protected:   make(map[string]bool),
		log:         log.WithFields(map[string]interface{}{"store": "session"}),
		now:         time.Now,
	}

	s.seedActor(seed.SuperAdmin, models.RoleSuperAdmin)
	s.superAdmin = seed.SuperAdmin.ID
	for _, a := range seed.Admins {
		s.seedActor(a, models.RoleAdmin)
	}
	for _, a := range seed.Businesses {
		s.seedActor(a, models.RoleBusiness)
	}

	return s
}

func (s *Store) seedActor(seed config.ActorSeed, role models.Role) {
	id := seed.ID
	if id == "" {
		id = uuid.NewString()
	}
	actor := models.Actor{
		ID:           id,
		Name:         seed.Name,
		Email:        seed.Email,
		Phone:        seed.Phone,
		Role:         role,
		BusinessID:   seed.BusinessID,
		RegisteredAt: s.now().UTC(),
	}
	s.actors = append(s.actors, actor)
	s.credentials[strings.ToLower(seed.Email)] = seed.Password
	s.protected[id] = true
}

// ==========================
// Authentication
// ==========================

// Login matches by case-insensitive email and exact credential. The
// failure never distinguishes an unknown email from a wrong password.
func (s *Store) Login(email, password string) (models.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	stored, ok := s.credentials[key]
	if !ok || stored != password {
		s.log.Warn("login failed", map[string]interface{}{})
		return models.Actor{}, apperrors.NewInvalidCredentialsError()
	}

	for _, a := range s.actors {
		if strings.EqualFold(a.Email, key) {
			actor := a
			s.current = &actor
			s.log.Info("login", map[string]interface{}{"actorId": a.ID, "role": string(a.Role)})
			return actor, nil
		}
	}

	// Credential without a directory entry: treat as the same generic
	// failure.
	return models.Actor{}, apperrors.NewInvalidCredentialsError()
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentActor returns the logged-in actor, or false when anonymous.
func (s *Store) CurrentActor() (models.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Actor{}, false
	}
	return *s.current, true
}

// CurrentRole returns RoleAnonymous when nobody is logged in.
func (s *Store) CurrentRole() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.RoleAnonymous
	}
	return s.current.Role
}

// ==========================
// Authorization predicates
// ==========================

func (s *Store) IsSuperAdmin() bool {
	return s.CurrentRole() == models.RoleSuperAdmin
}

// IsAdmin is true for both admins and the super-admin.
func (s *Store) IsAdmin() bool {
	role := s.CurrentRole()
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

func (s *Store) IsBusinessOwner() bool {
	return s.CurrentRole() == models.RoleBusiness
}

// CanEditBusiness implements the single authorization rule for
// business-scoped mutations: admins edit everything, a business actor
// edits only its own business.
func (s *Store) CanEditBusiness(businessID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return false
	}
	switch s.current.Role {
	case models.RoleSuperAdmin, models.RoleAdmin:
		return true
	case models.RoleBusiness:
		return s.current.BusinessID != "" && s.current.BusinessID == businessID
	default:
		return false
	}
}

// BusinessIDForCurrent returns the business owned by the current actor.
func (s *Store) BusinessIDForCurrent() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.Role != models.RoleBusiness || s.current.BusinessID == "" {
		return "", false
	}
	return s.current.BusinessID, true
}

// ==========================
// Directory management (super-admin only)
// ==========================

func (s *Store) CreateActor(spec ActorSpec) (models.Actor, error) {
	if !s.IsSuperAdmin() {
		return models.Actor{}, apperrors.NewForbiddenError("create actor")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(spec.Email))
	if key == "" {
		return models.Actor{}, apperrors.NewInvalidInputError("email is required")
	}
	if _, taken := s.credentials[key]; taken {
		return models.Actor{}, apperrors.NewEmailTakenError(spec.Email)
	}

	actor := models.Actor{
		ID:           uuid.NewString(),
		Name:         spec.Name,
		Email:        spec.Email,
		Phone:        spec.Phone,
		Role:         spec.Role,
		BusinessID:   spec.BusinessID,
		RegisteredAt: s.now().UTC(),
	}
	s.actors = append(s.actors, actor)
	s.credentials[key] = spec.Password

	s.log.Info("actor created", map[string]interface{}{"actorId": actor.ID, "role": string(actor.Role)})
	return actor, nil
}

// UpdateActor replaces the mutable fields of a non-seeded actor.
func (s *Store) UpdateActor(id string, spec ActorSpec) (models.Actor, error) {
	if !s.IsSuperAdmin() {
		return models.Actor{}, apperrors.NewForbiddenError("update actor")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.protected[id] {
		return models.Actor{}, apperrors.NewForbiddenError("update seeded actor")
	}

	for i, a := range s.actors {
		if a.ID != id {
			continue
		}
		if spec.Name != "" {
			a.Name = spec.Name
		}
		if spec.Phone != "" {
			a.Phone = spec.Phone
		}
		if spec.Role != "" {
			a.Role = spec.Role
		}
		if spec.BusinessID != "" {
			a.BusinessID = spec.BusinessID
		}
		if spec.Password != "" {
			s.credentials[strings.ToLower(a.Email)] = spec.Password
		}
		s.actors[i] = a
		return a, nil
	}
	return models.Actor{}, apperrors.NewNotFoundError("actor", id)
}

// DeleteActor removes a directory entry. The seeded super-admin (and any
// other seeded actor) is undeletable.
func (s *Store) DeleteActor(id string) error {
	if !s.IsSuperAdmin() {
		return apperrors.NewForbiddenError("delete actor")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.protected[id] {
		return apperrors.NewForbiddenError("delete seeded actor")
	}

	for i, a := range s.actors {
		if a.ID != id {
			continue
		}
		delete(s.credentials, strings.ToLower(a.Email))
		s.actors = append(s.actors[:i], s.actors[i+1:]...)
		s.log.Info("actor deleted", map[string]interface{}{"actorId": id})
		return nil
	}
	return apperrors.NewNotFoundError("actor", id)
}

// Actors returns a copy of the directory, credentials excluded.
func (s *Store) Actors() []models.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Actor(nil), s.actors...)
}

// ActorByID looks up a directory entry.
func (s *Store) ActorByID(id string) (models.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.actors {
		if a.ID == id {
			return a, true
		}
	}
	return models.Actor{}, false
}

// ActorForBusiness finds the business actor owning the given business.
func (s *Store) ActorForBusiness(businessID string) (models.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.actors {
		if a.Role == models.RoleBusiness && a.BusinessID == businessID {
			return a, true
		}
	}
	return models.Actor{}, false
}
