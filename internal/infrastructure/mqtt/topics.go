package mqtt

import "fmt"

// TopicPrefix is the root of every topic published or consumed by the home service.
const TopicPrefix = "smarthome"

// Topics provides builders for home service MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.HomeReport("country-house")
//	// Returns: "smarthome/home/country-house/report"
type Topics struct{}

// HomeReport returns the retained report topic of a home, keyed by its slug.
func (Topics) HomeReport(homeSlug string) string {
	return fmt.Sprintf("%s/home/%s/report", TopicPrefix, homeSlug)
}

// PlugCommand returns the topic on which smart plug power commands arrive.
func (Topics) PlugCommand() string {
	return TopicPrefix + "/command/plug"
}

// PlugAck returns the topic on which plug command outcomes are published.
func (Topics) PlugAck() string {
	return TopicPrefix + "/ack/plug"
}

// SystemStatus returns the topic carrying the online/offline status (and LWT).
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// AllHomeReports is a wildcard subscription matching every home report.
func (Topics) AllHomeReports() string {
	return TopicPrefix + "/home/+/report"
}
