package service

import (
	"errors"
	"testing"

	"go-pharmacy-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func validProduct(categoryID uuid.UUID) *model.Product {
	return &model.Product{
		MedicineID:   "MED-001",
		SupplierName: "Unilab",
		GenericName:  "Paracetamol",
		BrandName:    "Biogesic",
		CategoryID:   categoryID,
		Price:        4.50,
		Quantity:     100,
		Barcode:      "4800010001234",
	}
}

func TestCreateProductSetsAuditFields(t *testing.T) {
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Analgesics")

	svc := NewInventoryService(productRepo, categoryRepo, nil)

	product := validProduct(category.ID)
	if err := svc.CreateProduct(product, "admin"); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if product.CreatedBy != "admin" || product.UpdatedBy != "admin" {
		t.Errorf("audit fields = %q/%q, want admin/admin", product.CreatedBy, product.UpdatedBy)
	}
	if len(productRepo.products) != 1 {
		t.Errorf("expected 1 product stored, got %d", len(productRepo.products))
	}
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), newFakeCategoryRepo(), nil)

	err := svc.CreateProduct(validProduct(uuid.New()), "admin")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateProductRejectsMissingBarcode(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Analgesics")

	svc := NewInventoryService(newFakeProductRepo(), categoryRepo, nil)

	product := validProduct(category.ID)
	product.Barcode = ""
	if err := svc.CreateProduct(product, "admin"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateProductRejectsDuplicateBarcode(t *testing.T) {
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Analgesics")

	svc := NewInventoryService(productRepo, categoryRepo, nil)

	if err := svc.CreateProduct(validProduct(category.ID), "admin"); err != nil {
		t.Fatalf("first CreateProduct failed: %v", err)
	}

	duplicate := validProduct(category.ID)
	duplicate.MedicineID = "MED-002" // same barcode, different medicine id
	if err := svc.CreateProduct(duplicate, "admin"); !errors.Is(err, ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
}

func TestCreateProductMapsDriverDuplicateToConflict(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.createErr = gorm.ErrDuplicatedKey
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Analgesics")

	svc := NewInventoryService(productRepo, categoryRepo, nil)

	// The pre-checks see nothing, like a concurrent create that loses the
	// race to the unique index.
	if err := svc.CreateProduct(validProduct(category.ID), "admin"); !errors.Is(err, ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Analgesics")

	svc := NewInventoryService(newFakeProductRepo(), categoryRepo, nil)

	_, err := svc.UpdateProduct(uuid.New(), validProduct(category.ID), "", "admin")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteCategoryRefusesWhileProductsAssigned(t *testing.T) {
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Antibiotics")

	productRepo.add(validProduct(category.ID))

	svc := NewInventoryService(productRepo, categoryRepo, nil)

	if err := svc.DeleteCategory(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if _, err := categoryRepo.FindByID(category.ID); err != nil {
		t.Error("category must survive a refused delete")
	}
}

func TestDeleteCategoryRemovesUnused(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	category := categoryRepo.add("Vitamins")

	svc := NewInventoryService(newFakeProductRepo(), categoryRepo, nil)

	if err := svc.DeleteCategory(category.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if _, err := categoryRepo.FindByID(category.ID); err == nil {
		t.Error("category should be gone")
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	categoryRepo.add("Antacids")

	svc := NewInventoryService(newFakeProductRepo(), categoryRepo, nil)

	err := svc.CreateCategory(&model.Category{Name: "Antacids"}, "admin")
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestUpdateCategoryRejectsNameOfAnother(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	categoryRepo.add("Antacids")
	target := categoryRepo.add("Vitamins")

	svc := NewInventoryService(newFakeProductRepo(), categoryRepo, nil)

	if _, err := svc.UpdateCategory(target.ID, "Antacids", "admin"); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}
