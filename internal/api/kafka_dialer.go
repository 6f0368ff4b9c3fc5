package api

import (
	"crypto/tls"
	"crypto/x509"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// CreateKafkaDialer crea el dialer de Kafka con SASL/PLAIN y TLS (para
// brokers gestionados tipo Aiven)
func CreateKafkaDialer(username, password, caCert string) *kafka.Dialer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}
		dialer.SASLMechanism = mechanism
		log.Printf("🔐 Kafka: autenticación SASL/PLAIN habilitada (usuario: %s)", username)
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
	}

	if caCert != "" {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(caCert)); ok {
			tlsConfig.RootCAs = caCertPool
			log.Printf("🔒 Kafka: TLS con certificado CA habilitado")
		} else {
			log.Printf("⚠️ Kafka: no se pudo parsear el certificado CA, se usan los del sistema")
		}
	} else if username != "" && password != "" {
		tlsConfig.RootCAs = nil // Certificados del sistema
		log.Printf("🔒 Kafka: TLS habilitado (certificados del sistema)")
	}

	// Con SASL el broker gestionado exige TLS; también si hay CA explícito
	if dialer.SASLMechanism != nil || caCert != "" {
		dialer.TLS = tlsConfig
	}

	return dialer
}

// ParseKafkaBrokers parsea la lista de brokers separada por comas
func ParseKafkaBrokers(brokers string) []string {
	if brokers == "" {
		return []string{}
	}
	brokerList := strings.Split(strings.ReplaceAll(brokers, " ", ""), ",")
	var result []string
	for _, broker := range brokerList {
		if broker != "" {
			result = append(result, broker)
		}
	}
	return result
}
