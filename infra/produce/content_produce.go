package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ContentExchange = "content.events"

	PostCreatedQueue      = "content.post.created"
	PostCreatedRoutingKey = "post.created"

	ImageLinkedQueue      = "content.post.image-linked"
	ImageLinkedRoutingKey = "post.image.linked"
)

// PostCreatedMessage announces a newly persisted post. The image may still be
// in flight when consumers receive it.
type PostCreatedMessage struct {
	PostID    string `json:"post_id"`
	Creator   string `json:"creator"`
	HasImage  bool   `json:"has_image"`
	Timestamp int64  `json:"timestamp"`
}

// ImageLinkedMessage announces that a post's processed image became available.
type ImageLinkedMessage struct {
	PostID    string `json:"post_id"`
	ImageID   string `json:"image_id"`
	AccessURI string `json:"access_uri"`
	Timestamp int64  `json:"timestamp"`
}

// ContentService publishes content lifecycle events.
type ContentService struct {
	channel *amqp.Channel
}

func InitContentService(channel *amqp.Channel) *ContentService {
	service := &ContentService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ContentExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Content exchange: " + err.Error())
	}

	for queue, routingKey := range map[string]string{
		PostCreatedQueue: PostCreatedRoutingKey,
		ImageLinkedQueue: ImageLinkedRoutingKey,
	} {
		_, err = channel.QueueDeclare(
			queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			panic("Failed to declare queue " + queue + ": " + err.Error())
		}

		err = channel.QueueBind(
			queue,
			routingKey,
			ContentExchange,
			false,
			nil,
		)
		if err != nil {
			panic("Failed to bind queue " + queue + ": " + err.Error())
		}
	}

	return service
}

func (s *ContentService) PublishPostCreated(ctx context.Context, msg PostCreatedMessage) error {
	msg.Timestamp = time.Now().Unix()
	return s.publish(ctx, PostCreatedRoutingKey, msg)
}

func (s *ContentService) PublishImageLinked(ctx context.Context, msg ImageLinkedMessage) error {
	msg.Timestamp = time.Now().Unix()
	return s.publish(ctx, ImageLinkedRoutingKey, msg)
}

func (s *ContentService) publish(ctx context.Context, routingKey string, msg interface{}) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ContentExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
