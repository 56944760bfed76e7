package rabbitmq

// DonationsExchange exchange для событий пожертвований.
const DonationsExchange = "donations"

// Очередь и ключ маршрутизации события успешного пожертвования.
const (
	DonationSucceededQueue      = "donation.succeeded"
	DonationSucceededRoutingKey = "donation.succeeded"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetDonationQueues возвращает очереди, привязанные к DonationsExchange.
func GetDonationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: DonationSucceededQueue, RoutingKey: DonationSucceededRoutingKey},
	}
}
