package service

import (
	"go-pharmacy-pos/internal/repository"
)

type ReportService interface {
	SalesReport() ([]repository.SalesReportRow, error)
	InventoryStats() (*repository.InventoryStats, error)
}

type reportService struct {
	receiptRepo repository.ReceiptRepository
}

func NewReportService(rRepo repository.ReceiptRepository) ReportService {
	return &reportService{receiptRepo: rRepo}
}

func (s *reportService) SalesReport() ([]repository.SalesReportRow, error) {
	return s.receiptRepo.SalesReport()
}

func (s *reportService) InventoryStats() (*repository.InventoryStats, error) {
	return s.receiptRepo.InventoryStats()
}
