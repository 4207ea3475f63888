// Package service publishes reservation events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the request flow.
package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/flight-reservation/internal/model"
    q "github.com/iliyamo/flight-reservation/internal/queue"
)

// Publisher dials the broker per publish.  Reservation traffic is low and
// this keeps the publisher free of connection state.
type Publisher struct {
    URL string
    now func() time.Time
}

func NewPublisher(url string) *Publisher {
    return &Publisher{URL: url, now: time.Now}
}

// Async reports that NotifyReservation only enqueues the confirmation.
func (p *Publisher) Async() bool { return true }

// NotifyReservation queues a confirmation for the booking consumer, which
// sends the actual mail.  Success means the broker accepted the message;
// the mail outcome is recorded by the consumer in booking.log.
func (p *Publisher) NotifyReservation(ctx context.Context, email, name string, info model.FlightInfo) (bool, string) {
    ev := q.ReservationConfirmedEvent{
        MessageID:     uuid.NewString(),
        CustomerID:    info.CustomerID,
        CustomerName:  name,
        CustomerEmail: email,
        Flight:        info,
        ConfirmedAt:   p.now().UTC().Format(time.RFC3339),
    }
    if err := p.PublishReservationConfirmed(ctx, ev); err != nil {
        return false, "notification queue unavailable"
    }
    return true, "notification queued"
}

// PublishReservationConfirmed publishes ev to reservation.confirmed.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, ev q.ReservationConfirmedEvent) error {
    return p.publish(ctx, q.ReservationConfirmedQueue, ev.MessageID, ev)
}

// PublishReservationCancelled publishes c to reservation.cancelled.
func (p *Publisher) PublishReservationCancelled(ctx context.Context, c model.Cancellation) error {
    ev := CancelledEvent(c)
    return p.publish(ctx, q.ReservationCancelledQueue, ev.MessageID, ev)
}

// CancelledEvent converts a committed cancellation into its wire form.
func CancelledEvent(c model.Cancellation) q.ReservationCancelledEvent {
    return q.ReservationCancelledEvent{
        MessageID:    uuid.NewString(),
        CustomerID:   c.CustomerID,
        FlightNumber: c.FlightNumber,
        DepartureAt:  c.DepartureAt.Format(time.RFC3339),
        SeatClass:    c.SeatClass,
        Refund:       c.Refund,
        CancelledAt:  c.CancelledAt.UTC().Format(time.RFC3339),
    }
}

func (p *Publisher) publish(ctx context.Context, queue, messageID string, event any) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        queue, // name
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,   // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    messageID,
        Timestamp:    p.now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",    // default exchange
        queue, // routing key = queue name
        false, // mandatory
        false, // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
