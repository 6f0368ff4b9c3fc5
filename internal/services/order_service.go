package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/stock"
)

// OrderService administra los pedidos a proveedor y sus renglones (la línea
// base de stock que consume la conciliación)
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder crea un pedido con sus renglones. La clave de nombre de cada
// renglón se normaliza acá para el cruce posterior con ventas.
func (s *OrderService) CreateOrder(order *models.Order) error {
	if order.TenantID == "" || order.BranchID == "" {
		return fmt.Errorf("tenant_id y branch_id son obligatorios")
	}
	if order.Status == "" {
		order.Status = models.PedidoPendiente
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now().UTC()
	}
	for i := range order.Items {
		order.Items[i].TenantID = order.TenantID
		order.Items[i].NameKey = stock.NameKey(order.Items[i].Name)
	}
	if err := s.db.Create(order).Error; err != nil {
		return fmt.Errorf("error creando el pedido: %w", err)
	}
	return nil
}

// GetOrderByID devuelve un pedido con sus renglones
func (s *OrderService) GetOrderByID(tenantID, id string) (*models.Order, error) {
	var pedido models.Order
	err := s.db.Preload("Items").
		First(&pedido, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		return nil, fmt.Errorf("pedido %s no encontrado: %w", id, err)
	}
	return &pedido, nil
}

// ListOrders devuelve los pedidos del comercio, opcionalmente filtrados por
// sucursal y estado
func (s *OrderService) ListOrders(tenantID, branchID, status string) ([]models.Order, error) {
	query := s.db.Where("tenant_id = ?", tenantID)
	if branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var pedidos []models.Order
	if err := query.Preload("Items").Order("ordered_at DESC").Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("error consultando pedidos: %w", err)
	}
	return pedidos, nil
}

// UpdateOrderStatus cambia el estado del pedido (pendiente → recibido → cerrado)
func (s *OrderService) UpdateOrderStatus(tenantID, id, status string) error {
	if status != models.PedidoPendiente && status != models.PedidoRecibido && status != models.PedidoCerrado {
		return fmt.Errorf("estado inválido: %q", status)
	}
	var pedido models.Order
	if err := s.db.First(&pedido, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("pedido %s no encontrado: %w", id, err)
	}
	if err := s.db.Model(&pedido).Update("status", status).Error; err != nil {
		return fmt.Errorf("error actualizando el estado: %w", err)
	}
	return nil
}

// AddItem agrega un renglón a un pedido existente
func (s *OrderService) AddItem(tenantID, orderID string, item *models.OrderItem) error {
	var pedido models.Order
	if err := s.db.First(&pedido, "id = ? AND tenant_id = ?", orderID, tenantID).Error; err != nil {
		return fmt.Errorf("pedido %s no encontrado: %w", orderID, err)
	}
	item.OrderID = pedido.ID
	item.TenantID = tenantID
	item.NameKey = stock.NameKey(item.Name)
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("error agregando el renglón: %w", err)
	}
	return nil
}

// DeleteOrder elimina un pedido (baja lógica; los renglones quedan para la
// auditoría de stock)
func (s *OrderService) DeleteOrder(tenantID, id string) error {
	if err := s.db.Delete(&models.Order{}, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("error eliminando el pedido: %w", err)
	}
	return nil
}
