package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tiendafacil/server/internal/models"
)

// PaymentService administra los pagos a proveedor por sucursal
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// CreatePayment registra un pago o deuda a proveedor
func (s *PaymentService) CreatePayment(payment *models.ProviderPayment) error {
	if payment.TenantID == "" || payment.BranchID == "" {
		return fmt.Errorf("tenant_id y branch_id son obligatorios")
	}
	if payment.Provider == "" {
		return fmt.Errorf("el proveedor es obligatorio")
	}
	if payment.Amount.IsNegative() {
		return fmt.Errorf("el monto no puede ser negativo")
	}
	if err := s.db.Create(payment).Error; err != nil {
		return fmt.Errorf("error registrando el pago: %w", err)
	}
	return nil
}

// ListPayments devuelve los pagos del comercio; con soloPendientes solo la
// deuda abierta
func (s *PaymentService) ListPayments(tenantID, branchID string, soloPendientes bool) ([]models.ProviderPayment, error) {
	query := s.db.Where("tenant_id = ?", tenantID)
	if branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if soloPendientes {
		query = query.Where("paid = ?", false)
	}

	var pagos []models.ProviderPayment
	if err := query.Order("due_date ASC NULLS LAST, created_at DESC").Find(&pagos).Error; err != nil {
		return nil, fmt.Errorf("error consultando pagos: %w", err)
	}
	return pagos, nil
}

// MarkPaid marca un pago como saldado
func (s *PaymentService) MarkPaid(tenantID, id string) error {
	var pago models.ProviderPayment
	if err := s.db.First(&pago, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("pago %s no encontrado: %w", id, err)
	}
	if pago.Paid {
		return nil
	}
	ahora := time.Now().UTC()
	err := s.db.Model(&pago).Updates(map[string]interface{}{
		"paid":    true,
		"paid_at": ahora,
	}).Error
	if err != nil {
		return fmt.Errorf("error marcando el pago: %w", err)
	}
	return nil
}

// TotalDebt suma la deuda abierta del comercio (por sucursal si se indica)
func (s *PaymentService) TotalDebt(tenantID, branchID string) (decimal.Decimal, error) {
	pagos, err := s.ListPayments(tenantID, branchID, true)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range pagos {
		total = total.Add(p.Amount)
	}
	return total, nil
}

// DeletePayment elimina un pago (baja lógica)
func (s *PaymentService) DeletePayment(tenantID, id string) error {
	if err := s.db.Delete(&models.ProviderPayment{}, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("error eliminando el pago: %w", err)
	}
	return nil
}
