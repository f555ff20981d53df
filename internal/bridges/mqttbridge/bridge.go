package mqttbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-home/internal/home"
	"github.com/nerrad567/gray-logic-home/internal/infrastructure/mqtt"
)

// commandTimeout bounds a single plug command, including write-through persistence.
const commandTimeout = 5 * time.Second

// MQTTClient is the subset of *mqtt.Client used by the bridge.
type MQTTClient interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// HomeRegistry is the subset of *home.Registry used by the bridge.
type HomeRegistry interface {
	Name() string
	RoomsCount() int
	Report() []string
	SetPlugPower(ctx context.Context, roomName, deviceName string, on bool) error
}

// Logger is the logging interface used by the bridge.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options holds configuration for creating a bridge.
type Options struct {
	Client   MQTTClient
	Registry HomeRegistry

	// Interval between periodic report publishes. Zero disables the loop.
	Interval time.Duration

	// QoS used for every publish and subscription.
	QoS byte

	// Logger is optional.
	Logger Logger
}

// Bridge publishes home reports and executes plug commands.
//
// Thread Safety: All methods are safe for concurrent use.
type Bridge struct {
	client   MQTTClient
	registry HomeRegistry
	interval time.Duration
	qos      byte
	topics   mqtt.Topics

	now func() time.Time

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	logger   Logger
	loggerMu sync.RWMutex
}

// New creates a bridge. Call Start to begin operation.
func New(opts Options) (*Bridge, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("MQTT client is required")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("home registry is required")
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("report interval must not be negative")
	}

	return &Bridge{
		client:   opts.Client,
		registry: opts.Registry,
		interval: opts.Interval,
		qos:      opts.QoS,
		now:      time.Now,
		done:     make(chan struct{}),
		logger:   opts.Logger,
	}, nil
}

// Start subscribes to plug commands, publishes the initial report and
// starts the periodic publisher.
func (b *Bridge) Start(ctx context.Context) error {
	select {
	case <-b.done:
		return ErrStopped
	default:
	}

	topic := b.topics.PlugCommand()
	if err := b.client.Subscribe(topic, b.qos, b.HandleCommand); err != nil {
		return fmt.Errorf("subscribe to plug commands: %w", err)
	}
	b.logInfo("subscribed to commands", "topic", topic)

	if err := b.PublishReport(); err != nil {
		b.logError("failed to publish initial report", err)
	}

	if b.interval > 0 {
		b.wg.Add(1)
		go b.reportLoop(ctx)
	}

	b.logInfo("mqtt bridge started", "home", b.registry.Name(), "interval", b.interval)
	return nil
}

// Stop halts the periodic publisher. Safe to call multiple times.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.wg.Wait()
		b.logInfo("mqtt bridge stopped")
	})
}

func (b *Bridge) reportLoop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.done:
			return
		case <-ticker.C:
			if err := b.PublishReport(); err != nil {
				b.logError("failed to publish report", err)
			}
		}
	}
}

// ReportTopic returns the topic the home report is published on.
// Names without any slug-safe characters fall back to "home".
func (b *Bridge) ReportTopic() string {
	slug := home.Slug(b.registry.Name())
	if slug == "" {
		slug = "home"
	}
	return b.topics.HomeReport(slug)
}

// PublishReport publishes the current home report (retained).
func (b *Bridge) PublishReport() error {
	msg := ReportMessage{
		Home:        b.registry.Name(),
		Rooms:       b.registry.RoomsCount(),
		Lines:       b.registry.Report(),
		GeneratedAt: b.now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := b.client.Publish(b.ReportTopic(), payload, b.qos, true); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}

	b.logDebug("report published", "rooms", msg.Rooms, "lines", len(msg.Lines))
	return nil
}

// HandleCommand executes one plug command payload. It is registered as the
// subscription handler; the returned error is what the MQTT client logs.
func (b *Bridge) HandleCommand(_ string, payload []byte) error {
	cmd, err := ParsePlugCommand(payload)
	if err != nil {
		b.publishAck(cmd, AckFailed, CodeInvalidCommand, err.Error())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := b.registry.SetPlugPower(ctx, cmd.Room, cmd.Device, *cmd.On); err != nil {
		b.publishAck(cmd, AckFailed, errorCode(err), err.Error())
		return fmt.Errorf("set plug power: %w", err)
	}

	b.logInfo("plug command executed",
		"command_id", cmd.ID, "room", cmd.Room, "device", cmd.Device, "on", *cmd.On)
	b.publishAck(cmd, AckAccepted, "", "")

	if err := b.PublishReport(); err != nil {
		b.logError("failed to publish report after command", err)
	}
	return nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, home.ErrRoomNotFound), errors.Is(err, home.ErrDeviceNotFound):
		return CodeNotFound
	case errors.Is(err, home.ErrNotSmartPlug):
		return CodeNotSmartPlug
	default:
		return CodeInternal
	}
}

func (b *Bridge) publishAck(cmd PlugCommand, status AckStatus, code, message string) {
	ack := AckMessage{
		CommandID: cmd.ID,
		Room:      cmd.Room,
		Device:    cmd.Device,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: b.now().UTC(),
	}

	payload, err := json.Marshal(ack)
	if err != nil {
		b.logError("failed to marshal ack", err)
		return
	}
	if err := b.client.Publish(b.topics.PlugAck(), payload, b.qos, false); err != nil {
		b.logError("failed to publish ack", err)
	}
}

// SetLogger sets the logger for the bridge.
func (b *Bridge) SetLogger(logger Logger) {
	b.loggerMu.Lock()
	b.logger = logger
	b.loggerMu.Unlock()
}

func (b *Bridge) getLogger() Logger {
	b.loggerMu.RLock()
	defer b.loggerMu.RUnlock()
	return b.logger
}

func (b *Bridge) logInfo(msg string, keysAndValues ...any) {
	if logger := b.getLogger(); logger != nil {
		logger.Info(msg, keysAndValues...)
	}
}

func (b *Bridge) logDebug(msg string, keysAndValues ...any) {
	if logger := b.getLogger(); logger != nil {
		logger.Debug(msg, keysAndValues...)
	}
}

func (b *Bridge) logError(msg string, err error) {
	if logger := b.getLogger(); logger != nil {
		logger.Error(msg, "error", err)
	}
}
