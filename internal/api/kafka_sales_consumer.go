package api

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
)

// ventaMensaje es el formato de los eventos de venta en Kafka
type ventaMensaje struct {
	TenantID string  `json:"tenant_id"`
	BranchID string  `json:"branch_id,omitempty"`
	Product  string  `json:"product"`
	Qty      float64 `json:"qty"`
	Date     int64   `json:"date"` // epoch-ms; 0 = usar hora de llegada
}

// KafkaSalesConsumer lee los eventos de venta desde Kafka y los persiste
// para que la conciliación de stock pueda ventanearlos
type KafkaSalesConsumer struct {
	topic     string
	groupID   string
	reader    *kafka.Reader
	ctx       context.Context
	cancel    context.CancelFunc
	stockSvc  *services.StockService
	processed int64
	lastLog   int64
}

// NewKafkaSalesConsumer crea el consumidor de ventas
func NewKafkaSalesConsumer(brokers, topic string, stockSvc *services.StockService, username, password, caCert string) *KafkaSalesConsumer {
	brokerList := ParseKafkaBrokers(brokers)
	ctx, cancel := context.WithCancel(context.Background())

	dialer := CreateKafkaDialer(username, password, caCert)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokerList,
		Topic:       topic,
		GroupID:     "ventas-stock-group-v1",
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		Dialer:      dialer,
	})

	return &KafkaSalesConsumer{
		topic:    topic,
		groupID:  "ventas-stock-group-v1",
		reader:   reader,
		ctx:      ctx,
		cancel:   cancel,
		stockSvc: stockSvc,
		lastLog:  time.Now().Unix(),
	}
}

// Start lanza la lectura en una goroutine
func (kc *KafkaSalesConsumer) Start() {
	log.Printf("📡 Consumidor de ventas iniciado: topic=%s, groupID=%s", kc.topic, kc.groupID)

	go func() {
		for {
			select {
			case <-kc.ctx.Done():
				log.Println("🛑 Consumidor de ventas detenido")
				return
			default:
				msg, err := kc.reader.ReadMessage(kc.ctx)
				if err != nil {
					if err == context.Canceled {
						return
					}
					log.Printf("⚠️ Error leyendo del topic de ventas: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}

				var venta ventaMensaje
				if err := json.Unmarshal(msg.Value, &venta); err != nil {
					// No logueamos cada mensaje malformado para no inundar el log
					continue
				}
				if venta.TenantID == "" || venta.Product == "" {
					continue
				}
				if venta.Date == 0 {
					venta.Date = time.Now().UTC().UnixMilli()
				}

				evento := models.SalesEvent{
					TenantID: venta.TenantID,
					Product:  venta.Product,
					Qty:      venta.Qty,
					Date:     venta.Date,
				}
				if err := kc.stockSvc.RecordSalesEvent(kc.ctx, &evento); err != nil {
					log.Printf("⚠️ No se pudo guardar la venta de %q: %v", venta.Product, err)
					continue
				}

				// Aviso en vivo a la sucursal, si está conectada
				if venta.BranchID != "" {
					aviso, _ := json.Marshal(map[string]interface{}{
						"type":    "venta",
						"product": venta.Product,
						"qty":     venta.Qty,
					})
					GlobalHub.BroadcastToRoom(venta.BranchID, aviso)
				}

				processed := atomic.AddInt64(&kc.processed, 1)
				now := time.Now().Unix()
				if now-atomic.LoadInt64(&kc.lastLog) >= 5 {
					atomic.StoreInt64(&kc.lastLog, now)
					log.Printf("📊 Consumidor de ventas: %d eventos procesados", processed)
				}
			}
		}
	}()
}

// Stop detiene el consumidor
func (kc *KafkaSalesConsumer) Stop() {
	kc.cancel()
	if kc.reader != nil {
		kc.reader.Close()
	}
	log.Println("🛑 Consumidor de ventas detenido")
}
