// Package mqttbridge connects the home registry to the MQTT bus.
//
// Outbound, the bridge publishes the nested home report as a retained JSON
// message on smarthome/home/{slug}/report: once at start, on a fixed
// interval, and after every accepted command.
//
// Inbound, it subscribes to smarthome/command/plug:
//
//	{"id": "c-1", "room": "Hall", "device": "s1", "on": true}
//
// and switches the named smart plug through the registry. The outcome is
// acknowledged on smarthome/ack/plug with status "accepted" or "failed".
//
// The bridge only depends on the small MQTTClient and HomeRegistry
// interfaces, so tests run against fakes and no broker.
package mqttbridge
