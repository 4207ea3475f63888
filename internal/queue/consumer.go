package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/flight-reservation/internal/model"
)

// Mailer sends the confirmation mail for a reservation event.
type Mailer interface {
    NotifyReservation(ctx context.Context, email, name string, info model.FlightInfo) (bool, string)
}

// Consumer listens to the reservation queues.  Every message is appended
// to <LogDir>/booking.log in a single human-friendly line; confirmed
// reservations are additionally mailed through Mailer when one is set.
type Consumer struct {
    URL    string
    LogDir string
    Mailer Mailer

    mu sync.Mutex // serialises appends to the log file
}

// Run connects to RabbitMQ, declares both queues (durable) and consumes
// until ctx is cancelled.  Broker failures are retried with exponential
// backoff capped at 30s so the HTTP server keeps operating without a
// broker.
func (c *Consumer) Run(ctx context.Context) {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return
        }
        log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }

    confirmed, err := declareAndConsume(ch, ReservationConfirmedQueue)
    if err != nil {
        return err
    }
    cancelled, err := declareAndConsume(ch, ReservationCancelledQueue)
    if err != nil {
        return err
    }

    for {
        var d amqp.Delivery
        var ok bool
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok = <-confirmed:
        case d, ok = <-cancelled:
        }
        if !ok {
            return errors.New("deliveries channel closed")
        }
        if err := c.HandleMessage(ctx, d.RoutingKey, d.Body); err != nil {
            log.Printf("booking-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
}

func declareAndConsume(ch *amqp.Channel, name string) (<-chan amqp.Delivery, error) {
    if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
        return nil, fmt.Errorf("queue declare %s: %w", name, err)
    }
    msgs, err := ch.Consume(name, "", false, false, false, false, nil)
    if err != nil {
        return nil, fmt.Errorf("queue consume %s: %w", name, err)
    }
    return msgs, nil
}

// HandleMessage processes one delivery routed with key.
func (c *Consumer) HandleMessage(ctx context.Context, key string, body []byte) error {
    switch key {
    case ReservationConfirmedQueue:
        var ev ReservationConfirmedEvent
        if err := json.Unmarshal(body, &ev); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        mailed := "skipped"
        if c.Mailer != nil {
            ok, msg := c.Mailer.NotifyReservation(ctx, ev.CustomerEmail, ev.CustomerName, ev.Flight)
            mailed = fmt.Sprintf("%t (%s)", ok, msg)
        }
        return c.appendLine(fmt.Sprintf("[%s] Reservation confirmed | message_id=%s | cno=%s | flight=%s | departure=%s | class=%s | price=%d | email=%s\n",
            ev.ConfirmedAt, ev.MessageID, ev.CustomerID, ev.Flight.FlightNumber,
            ev.Flight.DepartureAt.Format(time.RFC3339), ev.Flight.SeatClass, ev.Flight.Price, mailed))
    case ReservationCancelledQueue:
        var ev ReservationCancelledEvent
        if err := json.Unmarshal(body, &ev); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        return c.appendLine(fmt.Sprintf("[%s] Reservation cancelled | message_id=%s | cno=%s | flight=%s | departure=%s | class=%s | refund=%d\n",
            ev.CancelledAt, ev.MessageID, ev.CustomerID, ev.FlightNumber, ev.DepartureAt, ev.SeatClass, ev.Refund))
    default:
        return fmt.Errorf("unknown routing key %q", key)
    }
}

func (c *Consumer) appendLine(line string) error {
    c.mu.Lock()
    defer c.mu.Unlock()

    dir := c.LogDir
    if dir == "" {
        dir = "logs"
    }
    // Ensure logs directory exists
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(dir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
