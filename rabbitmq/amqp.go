package rabbitmq

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"

	msgReconnect = "RECONNECT_DONE"
	msgClose     = "CLOSE"
)

type listenerMsg = string

type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Close() error
}

type defaultAMQPCLient struct {
	conn *amqp.Connection
	uri  string

	// publishers and consumers use separate channels so that consumers are
	// isolated from flow control applied to the publishing side
	consumeChannel *amqp.Channel
	publishChannel *amqp.Channel

	notifyCloseChan chan *amqp.Error

	mu        sync.Mutex
	listeners []chan listenerMsg
	reconFlag atomic.Bool
	closed    atomic.Bool

	logger *lecho.Logger
}

type DialOption = func(client *defaultAMQPCLient)

func WithAmqpLogger(logger *lecho.Logger) DialOption {
	return func(client *defaultAMQPCLient) {
		client.logger = logger
	}
}

func DialAMQP(uri string, options ...DialOption) (AMQPClient, error) {
	client := &defaultAMQPCLient{
		uri: uri,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(client)
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	go client.reconnectionLoop()

	return client, nil
}

func (c *defaultAMQPCLient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(time.Second * 3),
	})
	if err != nil {
		return err
	}

	consumeChannel, err := conn.Channel()
	if err != nil {
		return err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		return err
	}

	notifyCloseChan := make(chan *amqp.Error, 1)
	conn.NotifyClose(notifyCloseChan)

	c.mu.Lock()
	c.conn = conn
	c.consumeChannel = consumeChannel
	c.publishChannel = publishChannel
	c.notifyCloseChan = notifyCloseChan
	c.mu.Unlock()

	return nil
}

func (c *defaultAMQPCLient) reconnectionLoop() {
	for {
		c.mu.Lock()
		notifyCloseChan := c.notifyCloseChan
		c.mu.Unlock()

		amqpError := <-notifyCloseChan
		if c.closed.Load() {
			return
		}
		c.logger.Error(amqpError)

		expontentialBackoff := backoff.NewExponentialBackOff()
		expontentialBackoff.MaxInterval = time.Second * 10
		expontentialBackoff.MaxElapsedTime = time.Minute

		c.reconFlag.Store(true)

		c.logger.Info("amqp: trying to reconnect...")
		if err := backoff.Retry(c.connect, expontentialBackoff); err != nil {
			c.logger.Errorf("amqp: giving up reconnecting: %v", err)
			c.notifyListeners(msgClose)
			return
		}

		c.reconFlag.Store(false)
		c.logger.Info("amqp: succesfully reconnected")

		c.notifyListeners(msgReconnect)
	}
}

func (c *defaultAMQPCLient) notifyListeners(msg listenerMsg) {
	c.mu.Lock()
	listeners := append([]chan listenerMsg(nil), c.listeners...)
	c.mu.Unlock()
	for _, listener := range listeners {
		select {
		case listener <- msg:
		default:
			c.logger.Warnf("amqp: listener not draining, dropping message: %s", msg)
		}
	}
}

func (c *defaultAMQPCLient) addListener() chan listenerMsg {
	listener := make(chan listenerMsg, 2)
	c.mu.Lock()
	c.listeners = append(c.listeners, listener)
	c.mu.Unlock()
	return listener
}

func (c *defaultAMQPCLient) removeListener(listener chan listenerMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l == listener {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

func (c *defaultAMQPCLient) Close() error {
	c.closed.Store(true)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

func (c *defaultAMQPCLient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	// a short lived channel is enough for declaring topology
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

type ListenOptions struct {
	Durable    bool
	AutoDelete bool
	Internal   bool
	Wait       bool
	Exclusive  bool
	AutoAck    bool
}

type AMQPListenOptions = func(opts ListenOptions) ListenOptions

func WithDurable(durable bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Durable = durable
		return opts
	}
}

func WithAutoDelete(autoDelete bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoDelete = autoDelete
		return opts
	}
}

func WithExclusive(exclusive bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Exclusive = exclusive
		return opts
	}
}

func WithAutoAck(autoAck bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoAck = autoAck
		return opts
	}
}

func (c *defaultAMQPCLient) Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	deliveries, err := c.consume(exchange, routingKey, queueName, options...)
	if err != nil {
		return nil, err
	}

	clientChannel := make(chan amqp.Delivery)

	notifyReconnectChan := c.addListener()

	// Wraps the raw delivery channel so a listener survives reconnects: after
	// msgReconnect the deliveries come from the freshly opened channel.
	go func() {
		defer close(clientChannel)
		defer c.removeListener(notifyReconnectChan)
		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-notifyReconnectChan:
				switch msg {
				case msgReconnect:
					d, err := c.consume(exchange, routingKey, queueName, options...)
					if err != nil {
						c.logger.Error(err)
						return
					}

					c.logger.Infof("amqp: succesfully consuming messages with routingkey: %s from new deliveries channel", routingKey)
					deliveries = d

				case msgClose:
					return
				default:
					c.logger.Warnf("amqp: unrecognized message send to listener: %s", msg)
				}

			case delivery, ok := <-deliveries:
				if !ok {
					// wait for the reconnection loop to hand out a new channel
					deliveries = nil
					continue
				}
				select {
				case clientChannel <- delivery:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return clientChannel, nil
}

func (c *defaultAMQPCLient) consume(exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	opts := ListenOptions{
		Durable:    true,
		AutoDelete: false,
		Internal:   false,
		Wait:       false,
		Exclusive:  false,
		AutoAck:    false,
	}

	for _, opt := range options {
		opts = opt(opts)
	}

	c.mu.Lock()
	ch := c.consumeChannel
	c.mu.Unlock()

	err := ch.ExchangeDeclare(
		exchange,
		// topic exchanges route messages to queues based on the routing key
		"topic",
		opts.Durable,
		opts.AutoDelete,
		opts.Internal,
		// wait for the server to confirm the declaration
		opts.Wait,
		nil,
	)
	if err != nil {
		return nil, err
	}

	queue, err := ch.QueueDeclare(
		queueName,
		opts.Durable,
		opts.AutoDelete,
		opts.Exclusive,
		opts.Wait,
		// limit redeliveries of requeued messages
		amqp.Table{
			"delivery-limit": 10,
		},
	)
	if err != nil {
		return nil, err
	}

	err = ch.QueueBind(
		queue.Name,
		routingKey,
		exchange,
		opts.Wait,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return ch.Consume(
		queue.Name,
		"",
		opts.AutoAck,
		opts.Exclusive,
		false,
		opts.Wait,
		nil,
	)
}

func (c *defaultAMQPCLient) PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error {
	if c.reconFlag.Load() {
		expontentialBackoff := backoff.NewExponentialBackOff()
		expontentialBackoff.MaxInterval = time.Second * 10
		expontentialBackoff.MaxElapsedTime = time.Minute

		err := backoff.Retry(func() error {
			if c.reconFlag.Load() {
				return errors.New("amqp: trying to publish during reconnect")
			}
			return nil
		}, backoff.WithContext(expontentialBackoff, ctx))
		if err != nil {
			return err
		}
	}

	c.mu.Lock()
	ch := c.publishChannel
	c.mu.Unlock()
	return ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
