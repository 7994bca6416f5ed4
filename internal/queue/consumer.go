package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Log files, relative to the consumer's log directory.
const (
    ShowLogFile     = "shows.log"
    QuestionLogFile = "questions.log"
)

// Consumer listens to one queue and appends a line per message to
// Dir/File.  Format turns a message body into that line.
type Consumer struct {
    URL    string
    Queue  string
    Dir    string
    File   string
    Format func(body []byte) (string, error)
    Logger *slog.Logger
}

// NewShowConsumer records listed shows in dir/shows.log.
func NewShowConsumer(url, dir string, logger *slog.Logger) *Consumer {
    return &Consumer{
        URL:    url,
        Queue:  ShowListedQueue,
        Dir:    dir,
        File:   ShowLogFile,
        Format: decodeWith(FormatShowListed),
        Logger: logger,
    }
}

// NewQuestionConsumer records question changes in dir/questions.log.
func NewQuestionConsumer(url, dir string, logger *slog.Logger) *Consumer {
    return &Consumer{
        URL:    url,
        Queue:  QuestionChangedQueue,
        Dir:    dir,
        File:   QuestionLogFile,
        Format: decodeWith(FormatQuestionChanged),
        Logger: logger,
    }
}

func decodeWith[T any](format func(T) string) func([]byte) (string, error) {
    return func(body []byte) (string, error) {
        var ev T
        if err := json.Unmarshal(body, &ev); err != nil {
            return "", fmt.Errorf("unmarshal: %w", err)
        }
        return format(ev), nil
    }
}

// Run connects to RabbitMQ, declares the queue and consumes until ctx is
// cancelled.  Broker failures are retried with exponential backoff capped
// at 30 seconds; Run only returns once ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
    log := c.Logger.With("queue", c.Queue)
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Warn("consumer: dial failed", "err", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn, log)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Warn("consumer: consume loop ended, reconnecting", "err", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
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

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, log *slog.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("consumer: set QoS failed", "err", err)
    }
    if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Append(d.Body); err != nil {
                log.Error("consumer: handle message failed", "err", err, "message_id", d.MessageId)
                _ = d.Nack(false, false) // do not requeue a poison message
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Append formats body and appends the line to Dir/File, creating the
// directory when needed.
func (c *Consumer) Append(body []byte) error {
    line, err := c.Format(body)
    if err != nil {
        return err
    }
    if err := os.MkdirAll(c.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", c.Dir, err)
    }
    f, err := os.OpenFile(filepath.Join(c.Dir, c.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatShowListed renders ev as one newline-terminated log line.
func FormatShowListed(ev ShowListedEvent) string {
    return fmt.Sprintf("[%s] Show listed | show_id=%d | venue_id=%d | venue=%q | artist_id=%d | artist=%q | starts=%s\n",
        ev.ListedAt, ev.ShowID, ev.VenueID, ev.VenueName, ev.ArtistID, ev.ArtistName, ev.StartTime)
}

// FormatQuestionChanged renders ev as one newline-terminated log line.  The
// category is left out when the event carries none.
func FormatQuestionChanged(ev QuestionChangedEvent) string {
    line := fmt.Sprintf("[%s] Question %s | question_id=%d", ev.At, ev.Action, ev.QuestionID)
    if ev.Category != 0 {
        line += fmt.Sprintf(" | category=%d", ev.Category)
    }
    return line + "\n"
}
