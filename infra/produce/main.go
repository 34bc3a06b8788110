package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	ContentService *ContentService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	contentService := InitContentService(channel)
	if contentService == nil {
		panic("Failed to initialize Content produce service")
	}

	produceInstance = &Produce{
		ContentService: contentService,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
