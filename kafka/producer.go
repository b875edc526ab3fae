package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
)

type Producer struct {
	producer sarama.SyncProducer
}

// NewProducer connects to the broker, retrying a few times while it comes
// up. Returns nil when broker is empty or unreachable; publishing on a nil
// Producer is a no-op, the shop runs fine without Kafka.
func NewProducer(broker string) *Producer {
	if broker == "" {
		log.Println("KAFKA_BROKER not set, event publishing disabled")
		return nil
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error
	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return &Producer{producer: producer}
		}
		log.Printf("Waiting for Kafka... (%d/5) Error: %v", i, err)
		time.Sleep(3 * time.Second)
	}

	log.Printf("Kafka unreachable, event publishing disabled: %v", err)
	return nil
}

func (p *Producer) publish(topic string, event interface{}) {
	if p == nil || p.producer == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send %s Kafka message: %v", topic, err)
		return
	}

	log.Printf("Published %s event: %v", topic, string(data))
}

func (p *Producer) PublishOrderPlacedEvent(event interface{}) {
	p.publish("order.placed", event)
}

func (p *Producer) PublishPaymentVerifiedEvent(event interface{}) {
	p.publish("payment.verified", event)
}

func (p *Producer) PublishPaymentFailedEvent(event interface{}) {
	p.publish("payment.failed", event)
}

func (p *Producer) PublishMedicineUpsertedEvent(event interface{}) {
	p.publish("medicine.upserted", event)
}
