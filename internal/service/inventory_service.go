package service

import (
	"errors"
	"fmt"
	"log"
	"os"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateProduct  = errors.New("a product with this medicine id or barcode already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("cannot delete category: products are still assigned to it")
)

type InventoryService interface {
	CreateProduct(req *model.Product, actor string) error
	UpdateProduct(id uuid.UUID, req *model.Product, newImagePath string, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)

	CreateCategory(req *model.Category, actor string) error
	UpdateCategory(id uuid.UUID, name string, actor string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories() ([]model.Category, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		wsHub:        hub,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product, actor string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return ErrCategoryNotFound
	}

	// Duplicate keys get a distinct conflict signal, not a generic failure.
	if existing, _ := s.productRepo.FindByMedicineID(req.MedicineID); existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateProduct
	}
	if existing, _ := s.productRepo.FindByBarcode(req.Barcode); existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateProduct
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor

	if err := s.productRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateProduct
		}
		return err
	}

	s.broadcastStock("product_created", req, 0, req.Quantity, actor)
	return nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, newImagePath string, actor string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, ErrCategoryNotFound
	}

	oldStock := existing.Quantity
	oldImage := existing.ImagePath

	existing.MedicineID = req.MedicineID
	existing.SupplierName = req.SupplierName
	existing.MedicineName = req.MedicineName
	existing.GenericName = req.GenericName
	existing.BrandName = req.BrandName
	existing.CategoryID = req.CategoryID
	existing.Description = req.Description
	existing.Form = req.Form
	existing.Strength = req.Strength
	existing.Unit = req.Unit
	existing.ReorderLevel = req.ReorderLevel
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.DeliveryDate = req.DeliveryDate
	existing.Barcode = req.Barcode
	existing.UpdatedBy = actor
	if newImagePath != "" {
		existing.ImagePath = newImagePath
	}

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if err := s.productRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	// Remove the replaced file only after the row points at the new path.
	if newImagePath != "" && oldImage != "" && oldImage != newImagePath {
		removeImageFile(oldImage)
	}

	s.broadcastStock("product_updated", existing, oldStock, existing.Quantity, actor)
	return existing, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	if existing.ImagePath != "" {
		removeImageFile(existing.ImagePath)
	}
	return nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *inventoryService) CreateCategory(req *model.Category, actor string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateCategory
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor

	if err := s.categoryRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (s *inventoryService) UpdateCategory(id uuid.UUID, name string, actor string) (*model.Category, error) {
	if name == "" {
		return nil, errors.New("category name is required")
	}

	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if other, _ := s.categoryRepo.FindByName(name); other != nil && other.ID != uuid.Nil && other.ID != id {
		return nil, ErrDuplicateCategory
	}

	existing.Name = name
	existing.UpdatedBy = actor
	if err := s.categoryRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return existing, nil
}

// DeleteCategory refuses while any product still references the category.
func (s *inventoryService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrCategoryNotFound
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}

func (s *inventoryService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *inventoryService) broadcastStock(action string, product *model.Product, oldStock, newStock int, actor string) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":        product.ID,
			"barcode":   product.Barcode,
			"name":      product.BrandName,
			"old_stock": oldStock,
			"new_stock": newStock,
			"price":     product.Price,
		},
		"actor": actor,
	})
}

// removeImageFile is best-effort: a leftover file is logged, never fatal.
func removeImageFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove image file %s: %v", path, err)
	}
}
