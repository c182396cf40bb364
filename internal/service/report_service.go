package service

import (
	"time"

	"go-pos-inventory/internal/repository"
)

type ReportService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetInventoryStats() (*repository.InventoryStats, error)
}

type reportService struct {
	ledgerRepo repository.StockTransactionRepository
}

func NewReportService(ledgerRepo repository.StockTransactionRepository) ReportService {
	return &reportService{ledgerRepo: ledgerRepo}
}

func (s *reportService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.ledgerRepo.GetStockMovement(startDate, endDate)
}

func (s *reportService) GetInventoryStats() (*repository.InventoryStats, error) {
	return s.ledgerRepo.GetInventoryStats()
}
