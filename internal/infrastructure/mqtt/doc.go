// Package mqtt provides MQTT client connectivity for Gray Logic Home.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publishing with QoS validation and a payload size cap
//   - Subscriptions that are restored after a reconnect
//   - Last Will and Testament (LWT) on the system status topic
//
// The home bridge (internal/bridges/mqttbridge) publishes reports and
// receives plug commands through this client:
//
//	Home Registry ↔ mqttbridge ↔ MQTT Broker ↔ dashboards, automations
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.PlugCommand(), 1,
//	    func(topic string, payload []byte) error {
//	        return handle(payload)
//	    })
//
// TLS should be enabled (cfg.Broker.TLS=true) whenever the broker is not local.
package mqtt
