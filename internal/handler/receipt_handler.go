package handler

import (
	"go-pharmacy-pos/internal/pricing"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReceiptHandler struct {
	service service.POSService
}

func NewReceiptHandler(s service.POSService) *ReceiptHandler {
	return &ReceiptHandler{service: s}
}

func (h *ReceiptHandler) CreateReceipt(c *fiber.Ctx) error {
	var req service.CreateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.service.CreateReceipt(&req, getUsername(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Receipt recorded", "data": receipt})
}

func (h *ReceiptHandler) GetReceipts(c *fiber.Ctx) error {
	receipts, err := h.service.GetAllReceipts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipts)
}

func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid receipt ID"})
	}

	receipt, err := h.service.GetReceipt(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

func (h *ReceiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid receipt ID"})
	}

	if err := h.service.DeleteReceipt(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Receipt deleted"})
}

type quoteLine struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type quoteRequest struct {
	Cart            []quoteLine `json:"cart"`
	DiscountType    string      `json:"discount_type"`
	DiscountPercent float64     `json:"discount_percent"`
	CashGiven       *float64    `json:"cash_given"`
}

// Quote prices a cart without persisting anything, so the register can show
// the authoritative breakdown before the sale is finalized.
func (h *ReceiptHandler) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	discountType := pricing.DiscountType(req.DiscountType)
	if req.DiscountType == "" {
		discountType = pricing.DiscountNone
	}

	lines := make([]pricing.Line, len(req.Cart))
	for i, line := range req.Cart {
		lines[i] = pricing.Line{Quantity: line.Quantity, Price: line.Price}
	}

	breakdown, err := pricing.Compute(lines, discountType, req.DiscountPercent)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"total_price":      breakdown.Subtotal,
		"discount_percent": breakdown.DiscountPercent,
		"discount_amount":  breakdown.DiscountAmount,
		"net_pay":          breakdown.NetPay,
		"vatable_sale":     breakdown.VatableSale,
		"vat_amount":       breakdown.VatAmount,
	}

	if req.CashGiven != nil {
		change, err := pricing.Change(*req.CashGiven, breakdown.NetPay)
		if err != nil {
			return respondError(c, err)
		}
		resp["change_amount"] = change
	}

	return c.JSON(resp)
}
