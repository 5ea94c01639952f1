package repository

import (
	"pos_system/internal/models"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *models.InventoryItem) error
	GetByID(id uint) (*models.InventoryItem, error)
	GetByIDs(ids []uint) ([]models.InventoryItem, error)
	GetActive() ([]models.InventoryItem, error)
	SetActive(id uint, active bool) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) GetByIDs(ids []uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *inventoryRepository) GetActive() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) SetActive(id uint, active bool) error {
	result := r.db.Model(&models.InventoryItem{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
