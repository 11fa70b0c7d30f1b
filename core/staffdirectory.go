package core

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey means the token or name is already registered.
	ErrDuplicateKey = errors.New("token or name already in use")
	// ErrNotFound means no staff member matches the given token.
	ErrNotFound = errors.New("staff member not found")
)

// StaffDirectory is the durable token -> name mapping.
type StaffDirectory struct {
	db *gorm.DB
}

func NewStaffDirectory(db *gorm.DB) *StaffDirectory {
	return &StaffDirectory{db: db}
}

func (d *StaffDirectory) Lookup(token int64) (*StaffMember, error) {
	var member StaffMember
	err := d.db.Where("token = ?", token).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// LookupByName resolves a member by display name. Names are unique, so
// manual corrections can key on them.
func (d *StaffDirectory) LookupByName(name string) (*StaffMember, error) {
	var member StaffMember
	err := d.db.Where("name = ?", name).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *StaffDirectory) Register(token int64, name string) error {
	err := d.db.Create(&StaffMember{Token: token, Name: name}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

// Update rewrites a member's token and name in place. A collision with a
// different existing member is rejected, leaving the original row intact.
func (d *StaffDirectory) Update(originalToken, newToken int64, newName string) error {
	result := d.db.Model(&StaffMember{}).
		Where("token = ?", originalToken).
		Updates(map[string]interface{}{"token": newToken, "name": newName})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *StaffDirectory) Remove(token int64) error {
	result := d.db.Where("token = ?", token).Delete(&StaffMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *StaffDirectory) ListAll() ([]StaffMember, error) {
	var members []StaffMember
	if err := d.db.Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
