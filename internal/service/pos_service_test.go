package service

import (
	"errors"
	"math"
	"testing"

	"go-pharmacy-pos/internal/pricing"
	"go-pharmacy-pos/internal/repository"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// validSaleRequest builds a request whose aggregates agree with the
// server's arithmetic for a single 2 x 250.00 line with a senior discount.
func validSaleRequest(productID uuid.UUID) *CreateReceiptRequest {
	return &CreateReceiptRequest{
		CustomerName: "Juan dela Cruz",
		Cart: []CartLine{
			{ProductID: productID, ProductName: "Paracetamol 500mg", Quantity: 2, Price: 250},
		},
		DiscountType:    "senior",
		DiscountPercent: 20,
		DiscountAmount:  100,
		TotalPrice:      500,
		NetPay:          400,
		CashGiven:       500,
		ChangeAmount:    100,
		PaymentMethod:   "cash",
		VatableSale:     400 / 1.12,
		VatAmount:       400 - 400/1.12,
	}
}

func TestCreateReceiptPersistsSaleAndDecrementsStock(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 10

	svc := NewPOSService(receiptRepo, nil)

	receipt, err := svc.CreateReceipt(validSaleRequest(productID), "cashier1")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if receipt.ID == uuid.Nil {
		t.Error("expected receipt to be assigned an ID")
	}
	if len(receipt.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(receipt.Items))
	}
	if receipt.Items[0].ReceiptID != receipt.ID {
		t.Error("item not linked to its receipt")
	}
	if receiptRepo.stock[productID] != 8 {
		t.Errorf("expected stock 8 after sale, got %d", receiptRepo.stock[productID])
	}

	// Stored aggregates are the server's own, not echoes of the request.
	if !almostEqual(receipt.TotalPrice, 500) {
		t.Errorf("TotalPrice = %v, want 500", receipt.TotalPrice)
	}
	if !almostEqual(receipt.NetPay, 400) {
		t.Errorf("NetPay = %v, want 400", receipt.NetPay)
	}
	if !almostEqual(receipt.VatableSale, 400/1.12) {
		t.Errorf("VatableSale = %v, want %v", receipt.VatableSale, 400/1.12)
	}
	if !almostEqual(receipt.ChangeAmount, 100) {
		t.Errorf("ChangeAmount = %v, want 100", receipt.ChangeAmount)
	}
	if receipt.CreatedBy != "cashier1" {
		t.Errorf("CreatedBy = %q, want cashier1", receipt.CreatedBy)
	}
}

func TestCreateReceiptRejectsAggregateMismatch(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 10

	svc := NewPOSService(receiptRepo, nil)

	req := validSaleRequest(productID)
	req.NetPay = 399 // drifted from the cart arithmetic

	if _, err := svc.CreateReceipt(req, "cashier1"); !errors.Is(err, ErrAggregateMismatch) {
		t.Fatalf("expected ErrAggregateMismatch, got %v", err)
	}
	if len(receiptRepo.receipts) != 0 {
		t.Error("nothing should be persisted on mismatch")
	}
	if receiptRepo.stock[productID] != 10 {
		t.Error("stock must be untouched on mismatch")
	}
}

func TestCreateReceiptRejectsInsufficientCash(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 10

	svc := NewPOSService(receiptRepo, nil)

	req := validSaleRequest(productID)
	req.CashGiven = 399.99
	req.ChangeAmount = 0

	if _, err := svc.CreateReceipt(req, "cashier1"); !errors.Is(err, pricing.ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
	if len(receiptRepo.receipts) != 0 {
		t.Error("nothing should be persisted when cash is short")
	}
}

func TestCreateReceiptPropagatesInsufficientStock(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 1

	svc := NewPOSService(receiptRepo, nil)

	if _, err := svc.CreateReceipt(validSaleRequest(productID), "cashier1"); !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(receiptRepo.receipts) != 0 {
		t.Error("nothing should be persisted when stock is short")
	}
	if receiptRepo.stock[productID] != 1 {
		t.Error("stock must be untouched on failure")
	}
}

func TestCreateReceiptRejectsEmptyCart(t *testing.T) {
	svc := NewPOSService(newFakeReceiptRepo(), nil)

	req := &CreateReceiptRequest{
		CashGiven:     100,
		PaymentMethod: "cash",
	}

	if _, err := svc.CreateReceipt(req, "cashier1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateReceiptDefaultsDiscountToNone(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 5

	svc := NewPOSService(receiptRepo, nil)

	req := &CreateReceiptRequest{
		Cart: []CartLine{
			{ProductID: productID, ProductName: "Amoxicillin 500mg", Quantity: 3, Price: 50},
		},
		TotalPrice:    150,
		NetPay:        150,
		CashGiven:     200,
		ChangeAmount:  50,
		PaymentMethod: "cash",
		VatableSale:   150 / 1.12,
		VatAmount:     150 - 150/1.12,
	}

	receipt, err := svc.CreateReceipt(req, "cashier1")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	if receipt.DiscountType != string(pricing.DiscountNone) {
		t.Errorf("DiscountType = %q, want %q", receipt.DiscountType, pricing.DiscountNone)
	}
	if !almostEqual(receipt.ChangeAmount, 50) {
		t.Errorf("ChangeAmount = %v, want 50", receipt.ChangeAmount)
	}
}

func TestDeleteReceiptNotFound(t *testing.T) {
	svc := NewPOSService(newFakeReceiptRepo(), nil)

	if err := svc.DeleteReceipt(uuid.New()); !errors.Is(err, repository.ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}
}

func TestDeleteReceiptDoesNotRestoreStock(t *testing.T) {
	receiptRepo := newFakeReceiptRepo()
	productID := uuid.New()
	receiptRepo.stock[productID] = 10

	svc := NewPOSService(receiptRepo, nil)

	receipt, err := svc.CreateReceipt(validSaleRequest(productID), "cashier1")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if err := svc.DeleteReceipt(receipt.ID); err != nil {
		t.Fatalf("DeleteReceipt failed: %v", err)
	}
	if receiptRepo.stock[productID] != 8 {
		t.Errorf("deletion must not restore stock, got %d", receiptRepo.stock[productID])
	}
}
