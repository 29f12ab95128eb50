package rabbitmq

import (
	"context"
	"errors"
	"os"

	"github.com/getAlby/tahub.go/lib/model"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	"github.com/labstack/gommon/random"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	contentTypeJSON = "application/json"

	assetUpdatedRoutingKey = "asset.updated"
	assetBindingKey        = "asset.#"
)

type AssetUpdateHandler = func(ctx context.Context, body []byte) error

type Client interface {
	SubscribeToAssetUpdates(ctx context.Context, handler AssetUpdateHandler) error
	PublishAssetResponse(ctx context.Context, r model.AssetResponse) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	assetExchange  string
	assetQueueName string
	instanceID     string
}

type ClientOption = func(client *DefaultClient)

func WithAssetExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.assetExchange = exchange
	}
}

func WithAssetQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.assetQueueName = name
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		assetExchange:  "ledger_asset",
		assetQueueName: "ledger_asset_consumer",
		instanceID:     random.String(12, random.Alphanumeric),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// PublishAssetResponse sends the wire encoding of r to the asset exchange.
func (client *DefaultClient) PublishAssetResponse(ctx context.Context, r model.AssetResponse) error {
	body, err := model.EncodeAssetResponse(r)
	if err != nil {
		return err
	}

	err = client.amqpClient.ExchangeDeclare(
		client.assetExchange,
		"topic",
		// durable and non auto deleted exchanges survive broker restarts
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	return client.amqpClient.PublishWithContext(ctx,
		client.assetExchange,
		assetUpdatedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Headers: amqp.Table{
				"fingerprint": model.Fingerprint(r).String(),
			},
			Body: body,
		},
	)
}

// SubscribeToAssetUpdates feeds every published asset response to handler
// until ctx is done. Malformed deliveries are dropped, failed ones requeued once.
//
// Every instance must see every update, so each subscriber binds its own
// exclusive queue that goes away with the connection.
func (client *DefaultClient) SubscribeToAssetUpdates(ctx context.Context, handler AssetUpdateHandler) error {
	deliveryChan, err := client.amqpClient.Listen(ctx,
		client.assetExchange,
		assetBindingKey,
		client.instanceQueueName(),
		WithDurable(false),
		WithAutoDelete(true),
		WithExclusive(true),
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting asset update rabbitmq consumer")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveryChan:
			if !ok {
				return errors.New("amqp: asset update deliveries channel closed")
			}

			err := handler(ctx, delivery.Body)
			switch {
			case err == nil:
				delivery.Ack(false)
			case errors.Is(err, model.ErrInvalidPayload):
				client.logger.Errorf("Dropping malformed asset update: %v", err)
				delivery.Nack(false, false)
			default:
				captureErr(client.logger, err)
				delivery.Nack(false, !delivery.Redelivered)
			}
		}
	}
}

func (client *DefaultClient) instanceQueueName() string {
	return client.assetQueueName + "." + client.instanceID
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
