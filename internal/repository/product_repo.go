package repository

import (
	"go-pharmacy-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindByMedicineID(medicineID string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	CountByCategory(categoryID uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("medicine_name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) FindByMedicineID(medicineID string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "medicine_id = ?", medicineID).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete is permanent. Historical receipt items keep their snapshots, so
// an orphaned product_id there is tolerated.
func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
