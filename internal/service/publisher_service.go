package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"
)

type IPublisherService interface {
	SendMessage(ctx context.Context, payload interface{}) error
}

type publisherService struct {
	publisher message.Publisher
	topicName string
}

func NewPublisherService(publisher message.Publisher, topicName string) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topicName: topicName,
	}
}

func (ps *publisherService) SendMessage(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)

	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", ps.topicName, err)
	}
	return nil
}
