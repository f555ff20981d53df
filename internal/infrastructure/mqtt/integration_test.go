//go:build integration

package mqtt

import (
	"testing"
	"time"
)

// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func TestIntegration_RetainedReportRoundtrip(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.ClientID = "graylogic-home-int-report"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := Topics{}.HomeReport("integration-house")
	if err := client.PublishRetained(topic, []byte(`{"home":"Integration house"}`)); err != nil {
		t.Fatalf("PublishRetained() error = %v", err)
	}

	received := make(chan []byte, 1)
	err = client.Subscribe(Topics{}.AllHomeReports(), 1, func(got string, payload []byte) error {
		if got == topic {
			select {
			case received <- payload:
			default:
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !client.HasSubscription(Topics{}.AllHomeReports()) {
		t.Error("subscription not tracked")
	}

	select {
	case payload := <-received:
		if string(payload) != `{"home":"Integration house"}` {
			t.Errorf("payload = %s", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retained report not delivered")
	}

	if err := client.Unsubscribe(Topics{}.AllHomeReports()); err != nil {
		t.Errorf("Unsubscribe() error = %v", err)
	}
	// Clear the retained message.
	_ = client.Publish(topic, nil, 1, true)
}

func TestIntegration_ConnectRefused(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.Port = 19999

	if _, err := Connect(cfg); err == nil {
		t.Fatal("Connect() expected error for unreachable broker")
	}
}
