// Package service holds the business logic between the HTTP handlers and
// the repository: credential checks, session issuance, and the generic
// record lifecycle shared by every inventory collection.
package service

import (
	"context"

	"example.com/acgl/services/inventory/internal/auth"
	"example.com/acgl/services/inventory/internal/models"
	"example.com/acgl/services/inventory/internal/registry"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned on login when the username does not
// resolve to an active user or the password does not match. Callers must
// not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the business logic operations
type Service interface {
	// Session operations
	Login(ctx context.Context, username, password string) (*session.Identity, string, error)
	Logout(ctx context.Context, token string) error

	// Inventory record operations, generic over the schema registry
	ListRecords(ctx context.Context, d registry.Descriptor, f repository.Filters) ([]map[string]interface{}, error)
	CreateRecord(ctx context.Context, d registry.Descriptor, rec models.InventoryRecord, identity *session.Identity) error
	UpdateRecord(ctx context.Context, d registry.Descriptor, id uint, rec models.InventoryRecord) error
	DeleteRecord(ctx context.Context, d registry.Descriptor, id uint) error

	// Reference and dashboard operations
	ListPlants(ctx context.Context) ([]models.Plant, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	DashboardStats(ctx context.Context) (map[string]int64, error)
}

// service is an implementation of the Service interface
type service struct {
	repo     repository.Repository
	sessions session.Store
	log      *logrus.Logger
}

// NewService creates a new service instance
func NewService(repo repository.Repository, sessions session.Store, log *logrus.Logger) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		log:      log,
	}
}

// Login checks the credentials against the active user row and opens a
// session on success.
func (s *service) Login(ctx context.Context, username, password string) (*session.Identity, string, error) {
	user, err := s.repo.FindActiveUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	identity := session.Identity{
		UserID:   user.ID,
		Username: user.Username,
		UserType: user.UserType,
		FullName: user.FullName,
	}

	token, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, "", errors.WithMessage(err, "failed to open session")
	}

	s.log.WithField("username", username).Info("User logged in")
	return &identity, token, nil
}

// Logout discards the session. Unknown tokens are not an error; the result
// is the same either way.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *service) ListRecords(ctx context.Context, d registry.Descriptor, f repository.Filters) ([]map[string]interface{}, error) {
	return s.repo.ListRecords(ctx, d, f)
}

// CreateRecord stamps the record with the authenticated identity and hands
// it to the store, which allocates its sr_no atomically with the insert.
func (s *service) CreateRecord(ctx context.Context, d registry.Descriptor, rec models.InventoryRecord, identity *session.Identity) error {
	if identity != nil {
		userID := identity.UserID
		rec.SetCreatedBy(&userID)
	}

	if err := s.repo.CreateRecord(ctx, d, rec); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"entity": d.Key,
		"id":     rec.RecordID(),
		"sr_no":  rec.Sequence(),
	}).Info("Record created")
	return nil
}

func (s *service) UpdateRecord(ctx context.Context, d registry.Descriptor, id uint, rec models.InventoryRecord) error {
	return s.repo.UpdateRecord(ctx, d, id, rec)
}

func (s *service) DeleteRecord(ctx context.Context, d registry.Descriptor, id uint) error {
	return s.repo.SoftDeleteRecord(ctx, d, id)
}

func (s *service) ListPlants(ctx context.Context) ([]models.Plant, error) {
	return s.repo.ListPlants(ctx)
}

func (s *service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// statTables maps dashboard stat keys to the tables they count. Both server
// collections roll up into one "servers" figure.
var statTables = map[string][]string{
	"assets":            {"assets"},
	"software_licenses": {"software_licenses"},
	"servers":           {"sap_servers", "non_sap_servers"},
	"switches":          {"network_switches"},
	"cctv":              {"cctv_cameras"},
	"printers":          {"printers"},
	"plants":            {"plants"},
	"departments":       {"departments"},
}

// DashboardStats counts active rows per collection.
func (s *service) DashboardStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, len(statTables))
	for key, tables := range statTables {
		var total int64
		for _, table := range tables {
			count, err := s.repo.CountActive(ctx, table)
			if err != nil {
				return nil, err
			}
			total += count
		}
		stats[key] = total
	}
	return stats, nil
}
