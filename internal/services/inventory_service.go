package services

import (
	"fmt"
	"log"
	"pos_system/internal/models"
	"pos_system/internal/repository"
	"strings"
)

// CatalogCache caches the active catalog between writes. GetCatalog returns
// an error on a miss; SetCatalog and InvalidateCatalog keep it coherent.
type CatalogCache interface {
	GetCatalog() ([]models.InventoryItem, error)
	SetCatalog(items []models.InventoryItem) error
	InvalidateCatalog() error
}

type InventoryService interface {
	CreateItem(name string, price float64) (*models.InventoryItem, error)
	DeactivateItem(id uint) error
	GetItem(id uint) (*models.InventoryItem, error)
	ActiveItems() ([]models.InventoryItem, error)
}

type inventoryService struct {
	repo  repository.InventoryRepository
	cache CatalogCache
}

// NewInventoryService wires the catalog. cache may be nil; every read then
// goes straight to the store.
func NewInventoryService(repo repository.InventoryRepository, cache CatalogCache) InventoryService {
	return &inventoryService{repo: repo, cache: cache}
}

// CreateItem adds a catalog entry. Names are trimmed and uppercased;
// negative prices are rejected.
func (s *inventoryService) CreateItem(name string, price float64) (*models.InventoryItem, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	item := &models.InventoryItem{
		Name:     name,
		Price:    price,
		IsActive: true,
	}
	if err := s.repo.Create(item); err != nil {
		return nil, translate(err)
	}
	s.invalidateCache()
	return item, nil
}

// DeactivateItem soft-removes an item from the catalog. Historical order
// items keep referencing it.
func (s *inventoryService) DeactivateItem(id uint) error {
	if err := s.repo.SetActive(id, false); err != nil {
		return translate(err)
	}
	s.invalidateCache()
	return nil
}

func (s *inventoryService) GetItem(id uint) (*models.InventoryItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// ActiveItems serves the selection catalog, read-through cached.
func (s *inventoryService) ActiveItems() ([]models.InventoryItem, error) {
	if s.cache != nil {
		if items, err := s.cache.GetCatalog(); err == nil {
			return items, nil
		}
	}

	items, err := s.repo.GetActive()
	if err != nil {
		return nil, translate(err)
	}
	if s.cache != nil {
		if err := s.cache.SetCatalog(items); err != nil {
			log.Printf("Warning: failed to cache catalog: %v", err)
		}
	}
	return items, nil
}

func (s *inventoryService) invalidateCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(); err != nil {
		log.Printf("Warning: failed to invalidate catalog cache: %v", err)
	}
}
