// internal/services/access_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// AccessService maintains the two allow-lists gating series creation and
// restricted minting. The lists are independent capability sets; only the
// registry owner configured at startup may mutate them.
type AccessService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAccessService(db *gorm.DB, cfg *config.Config) *AccessService {
	return &AccessService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AccessService) AddCreator(callerID, principalID string) error {
	return s.add(callerID, principalID, models.AllowlistRoleCreator)
}

func (s *AccessService) RemoveCreator(callerID, principalID string) error {
	return s.remove(callerID, principalID, models.AllowlistRoleCreator)
}

func (s *AccessService) AddMinter(callerID, principalID string) error {
	return s.add(callerID, principalID, models.AllowlistRoleMinter)
}

func (s *AccessService) RemoveMinter(callerID, principalID string) error {
	return s.remove(callerID, principalID, models.AllowlistRoleMinter)
}

func (s *AccessService) IsCreator(principalID string) bool {
	return s.hasRole(s.db, principalID, models.AllowlistRoleCreator)
}

func (s *AccessService) IsMinter(principalID string) bool {
	return s.hasRole(s.db, principalID, models.AllowlistRoleMinter)
}

func (s *AccessService) ListPrincipals(role models.AllowlistRole, params utils.EnumerationParams) ([]models.AllowlistEntry, int64, error) {
	query := s.db.Model(&models.AllowlistEntry{}).Where("role = ?", role)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count allowlist entries: %w", err)
	}

	var entries []models.AllowlistEntry
	if err := utils.ApplyEnumeration(query.Order("created_at ASC"), params).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch allowlist entries: %w", err)
	}

	return entries, total, nil
}

// add is idempotent: granting an already-present principal is a no-op
// success.
func (s *AccessService) add(callerID, principalID string, role models.AllowlistRole) error {
	if callerID != s.cfg.Ledger.RegistryOwner {
		return models.ErrUnauthorized
	}

	entry := models.AllowlistEntry{PrincipalID: principalID, Role: role}
	if err := s.db.Where("principal_id = ? AND role = ?", principalID, role).
		FirstOrCreate(&entry).Error; err != nil {
		return fmt.Errorf("failed to add allowlist entry: %w", err)
	}

	return nil
}

// remove is idempotent: revoking an absent principal is a no-op success.
func (s *AccessService) remove(callerID, principalID string, role models.AllowlistRole) error {
	if callerID != s.cfg.Ledger.RegistryOwner {
		return models.ErrUnauthorized
	}

	if err := s.db.Where("principal_id = ? AND role = ?", principalID, role).
		Delete(&models.AllowlistEntry{}).Error; err != nil {
		return fmt.Errorf("failed to remove allowlist entry: %w", err)
	}

	return nil
}

// hasRole runs against the handed-in db so the mint flow can check
// membership inside its own transaction.
func (s *AccessService) hasRole(db *gorm.DB, principalID string, role models.AllowlistRole) bool {
	var count int64
	db.Model(&models.AllowlistEntry{}).
		Where("principal_id = ? AND role = ?", principalID, role).
		Count(&count)
	return count > 0
}
