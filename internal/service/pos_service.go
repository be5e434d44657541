package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/pricing"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/validator"

	"github.com/google/uuid"
)

// Aggregates computed by the client must agree with the server's own
// arithmetic to the cent.
const aggregateTolerance = 0.01

var ErrAggregateMismatch = errors.New("submitted totals do not match the cart lines")

// CartLine is one scanned product as submitted by the POS screen.
type CartLine struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	ProductName string    `json:"product_name" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Price       float64   `json:"price" validate:"gte=0"`
}

// CreateReceiptRequest carries a finalized sale. The aggregate fields are
// what the client displayed; the server recomputes all of them from the
// cart before anything is persisted.
type CreateReceiptRequest struct {
	CustomerName    string     `json:"customer_name"`
	CustomerAddress string     `json:"customer_address"`
	CustomerTIN     string     `json:"customer_tin"`
	Cart            []CartLine `json:"cart" validate:"required,min=1,dive"`
	DiscountType    string     `json:"discount_type"`
	DiscountPercent float64    `json:"discount_percent"`
	DiscountAmount  float64    `json:"discount_amount"`
	TotalPrice      float64    `json:"total_price"`
	NetPay          float64    `json:"net_pay"`
	CashGiven       float64    `json:"cash_given"`
	ChangeAmount    float64    `json:"change_amount"`
	PaymentMethod   string     `json:"payment_method"`
	VatableSale     float64    `json:"vatable_sale"`
	VatAmount       float64    `json:"vat_amount"`
	TransactionDate time.Time  `json:"transaction_date"`
}

type POSService interface {
	CreateReceipt(req *CreateReceiptRequest, actor string) (*model.Receipt, error)
	DeleteReceipt(id uuid.UUID) error
	GetAllReceipts() ([]model.Receipt, error)
	GetReceipt(id uuid.UUID) (*model.Receipt, error)
}

type posService struct {
	receiptRepo repository.ReceiptRepository
	wsHub       *ws.Hub
}

func NewPOSService(rRepo repository.ReceiptRepository, hub *ws.Hub) POSService {
	return &posService{
		receiptRepo: rRepo,
		wsHub:       hub,
	}
}

// CreateReceipt validates and recomputes the sale, then persists the
// receipt, its items, and the stock decrements in one database
// transaction. Nothing is written when any step fails.
func (s *posService) CreateReceipt(req *CreateReceiptRequest, actor string) (*model.Receipt, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	lines := make([]pricing.Line, len(req.Cart))
	for i, line := range req.Cart {
		lines[i] = pricing.Line{Quantity: line.Quantity, Price: line.Price}
	}

	discountType := pricing.DiscountType(req.DiscountType)
	if req.DiscountType == "" {
		discountType = pricing.DiscountNone
	}

	breakdown, err := pricing.Compute(lines, discountType, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	change, err := pricing.Change(req.CashGiven, breakdown.NetPay)
	if err != nil {
		return nil, err
	}

	// The client's figures are display values only; reject any that drift
	// from the authoritative arithmetic.
	if !closeEnough(req.TotalPrice, breakdown.Subtotal) ||
		!closeEnough(req.DiscountAmount, breakdown.DiscountAmount) ||
		!closeEnough(req.NetPay, breakdown.NetPay) ||
		!closeEnough(req.VatableSale, breakdown.VatableSale) ||
		!closeEnough(req.VatAmount, breakdown.VatAmount) ||
		!closeEnough(req.ChangeAmount, change) {
		return nil, ErrAggregateMismatch
	}

	transactionDate := req.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	receipt := &model.Receipt{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerTIN:     req.CustomerTIN,
		TotalPrice:      breakdown.Subtotal,
		DiscountType:    string(discountType),
		DiscountPercent: breakdown.DiscountPercent,
		DiscountAmount:  breakdown.DiscountAmount,
		NetPay:          breakdown.NetPay,
		CashGiven:       req.CashGiven,
		ChangeAmount:    change,
		PaymentMethod:   req.PaymentMethod,
		VatableSale:     breakdown.VatableSale,
		VatAmount:       breakdown.VatAmount,
		TransactionDate: transactionDate,
	}
	receipt.CreatedBy = actor
	receipt.UpdatedBy = actor

	items := make([]model.ReceiptItem, len(req.Cart))
	for i, line := range req.Cart {
		items[i] = model.ReceiptItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		}
	}

	if err := s.receiptRepo.CreateWithItems(receipt, items); err != nil {
		return nil, err
	}

	s.broadcastSale(receipt, actor)
	return receipt, nil
}

func (s *posService) DeleteReceipt(id uuid.UUID) error {
	return s.receiptRepo.DeleteWithItems(id)
}

func (s *posService) GetAllReceipts() ([]model.Receipt, error) {
	return s.receiptRepo.FindAll()
}

func (s *posService) GetReceipt(id uuid.UUID) (*model.Receipt, error) {
	return s.receiptRepo.FindByID(id)
}

func (s *posService) broadcastSale(receipt *model.Receipt, actor string) {
	if s.wsHub == nil {
		return
	}

	sold := make([]map[string]interface{}, len(receipt.Items))
	for i, item := range receipt.Items {
		sold[i] = map[string]interface{}{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		}
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":       "stock_update",
		"action":     "sale_recorded",
		"receipt_id": receipt.ID,
		"items":      sold,
		"actor":      actor,
	})
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= aggregateTolerance
}
