package repository

import (
	"errors"
	"time"

	"go-pharmacy-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrReceiptNotFound   = errors.New("receipt not found")
)

type ReceiptRepository interface {
	CreateWithItems(receipt *model.Receipt, items []model.ReceiptItem) error
	DeleteWithItems(id uuid.UUID) error
	FindAll() ([]model.Receipt, error)
	FindByID(id uuid.UUID) (*model.Receipt, error)
	SalesReport() ([]SalesReportRow, error)
	InventoryStats() (*InventoryStats, error)
}

// SalesReportRow is one line of the receipts x items join.
type SalesReportRow struct {
	TransactionDate   time.Time `json:"transaction_date"`
	ProductName       string    `json:"product_name"`
	QuantitySold      int       `json:"quantity_sold"`
	ItemPrice         float64   `json:"item_price"`
	TotalItemSale     float64   `json:"total_item_sale"`
	CustomerName      string    `json:"customer_name"`
	PaymentMethod     string    `json:"payment_method"`
	ReceiptTotalPrice float64   `json:"receipt_total_price"`
	DiscountAmount    float64   `json:"discount_amount"`
	NetPay            float64   `json:"net_pay"`
	VatAmount         float64   `json:"vat_amount"`
}

// InventoryStats is the overview block for the reports screen.
type InventoryStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	StockValuation float64 `json:"stock_valuation"`
}

type receiptRepo struct {
	db *gorm.DB
}

// lockForUpdate adds SELECT ... FOR UPDATE to reads inside the running
// transaction, so the stock check holds the product row until commit.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func NewReceiptRepo(db *gorm.DB) ReceiptRepository {
	return &receiptRepo{db}
}

// CreateWithItems persists a finalized sale: one receipt row, one item row
// per cart line, and one stock decrement per line, all inside a single
// database transaction. Stock sufficiency is re-checked here under a row
// lock so two concurrent sales cannot both take the last unit. Any failure
// rolls the whole sale back.
func (r *receiptRepo) CreateWithItems(receipt *model.Receipt, items []model.ReceiptItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(receipt).Error; err != nil {
			return err
		}

		for i := range items {
			item := &items[i]
			item.ReceiptID = receipt.ID

			var product model.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				return ErrProductNotFound
			}
			if product.Quantity < item.Quantity {
				return ErrInsufficientStock
			}

			if err := tx.Create(item).Error; err != nil {
				return err
			}

			if err := tx.Model(&model.Product{}).
				Where("id = ?", product.ID).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		receipt.Items = items
		return nil
	})
}

// DeleteWithItems removes a receipt and its items as one unit. Stock is
// not restored: deletion is record correction, not a sale reversal.
func (r *receiptRepo) DeleteWithItems(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", id).Delete(&model.ReceiptItem{}).Error; err != nil {
			return err
		}

		res := tx.Unscoped().Delete(&model.Receipt{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReceiptNotFound
		}
		return nil
	})
}

func (r *receiptRepo) FindAll() ([]model.Receipt, error) {
	var receipts []model.Receipt
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("receipt_items.created_at ASC")
		}).
		Order("transaction_date DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepo) FindByID(id uuid.UUID) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("receipt_items.created_at ASC")
		}).
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReceiptNotFound
	}
	return &receipt, err
}

func (r *receiptRepo) SalesReport() ([]SalesReportRow, error) {
	var results []SalesReportRow

	rows, err := r.db.Table("receipts r").
		Select(`
			r.transaction_date,
			ri.product_name,
			ri.quantity AS quantity_sold,
			ri.price AS item_price,
			(ri.quantity * ri.price) AS total_item_sale,
			r.customer_name,
			r.payment_method,
			r.total_price AS receipt_total_price,
			r.discount_amount,
			r.net_pay,
			r.vat_amount
		`).
		Joins("JOIN receipt_items ri ON ri.receipt_id = r.id").
		Where("r.deleted_at IS NULL").
		Order("r.transaction_date DESC, ri.product_name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row SalesReportRow
		if err := rows.Scan(
			&row.TransactionDate, &row.ProductName, &row.QuantitySold,
			&row.ItemPrice, &row.TotalItemSale, &row.CustomerName,
			&row.PaymentMethod, &row.ReceiptTotalPrice, &row.DiscountAmount,
			&row.NetPay, &row.VatAmount,
		); err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func (r *receiptRepo) InventoryStats() (*InventoryStats, error) {
	var stats InventoryStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("quantity <= reorder_level").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.StockValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
