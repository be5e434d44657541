package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service   service.InventoryService
	uploadDir string
}

func NewProductHandler(s service.InventoryService, uploadDir string) *ProductHandler {
	return &ProductHandler{service: s, uploadDir: uploadDir}
}

// parseProductForm reads a product out of a multipart form. Products always
// arrive as form data because an image file may ride along.
func parseProductForm(c *fiber.Ctx) (*model.Product, error) {
	categoryID, err := uuid.Parse(c.FormValue("category_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid category_id")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price")
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid quantity")
	}

	reorderLevel, err := strconv.Atoi(c.FormValue("reorder_level", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid reorder_level")
	}

	product := &model.Product{
		MedicineID:   c.FormValue("medicine_id"),
		SupplierName: c.FormValue("supplier_name"),
		MedicineName: c.FormValue("medicine_name"),
		GenericName:  c.FormValue("generic_name"),
		BrandName:    c.FormValue("brand_name"),
		CategoryID:   categoryID,
		Description:  c.FormValue("description"),
		Form:         c.FormValue("form"),
		Strength:     c.FormValue("strength"),
		Unit:         c.FormValue("unit"),
		ReorderLevel: reorderLevel,
		Price:        price,
		Quantity:     quantity,
		Barcode:      c.FormValue("barcode"),
	}

	if raw := c.FormValue("delivery_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date, expected YYYY-MM-DD")
		}
		product.DeliveryDate = date
	}

	return product, nil
}

// saveImage writes an uploaded product image under the upload directory
// with a fresh name so filenames never collide.
func (h *ProductHandler) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No image attached is fine.
		return "", nil
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.uploadDir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	product, err := parseProductForm(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store image"})
	}
	product.ImagePath = imagePath

	if err := h.service.CreateProduct(product, getUsername(c)); err != nil {
		// The row was never written, so the file must not stay behind.
		if imagePath != "" {
			os.Remove(imagePath)
		}
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := parseProductForm(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store image"})
	}

	updated, err := h.service.UpdateProduct(id, product, imagePath, getUsername(c))
	if err != nil {
		if imagePath != "" {
			os.Remove(imagePath)
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}
