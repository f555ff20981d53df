package home

import "fmt"

// Kind identifies a device variant.
type Kind string

// Device kinds.
const (
	KindSmartPlug   Kind = "smart_plug"
	KindThermometer Kind = "thermometer"
)

// AllKinds returns every supported device kind.
func AllKinds() []Kind {
	return []Kind{KindSmartPlug, KindThermometer}
}

// Valid reports whether k is a known device kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSmartPlug, KindThermometer:
		return true
	default:
		return false
	}
}

// Device is a leaf of the home hierarchy.
//
// The set of implementations is closed: only *SmartPlug and *Thermometer
// satisfy it. Callers that need variant-specific state use a type switch.
type Device interface {
	// Name returns the device name, unique within its room.
	Name() string

	// Kind returns the variant tag.
	Kind() Kind

	// Report renders a single human-readable status line.
	Report() string

	sealed()
}

// SmartPlug is a switchable outlet with a rated capacity.
type SmartPlug struct {
	name     string
	on       bool
	capacity uint16
}

// NewSmartPlug creates a plug that starts switched off.
func NewSmartPlug(name string, capacity uint16) *SmartPlug {
	return &SmartPlug{
		name:     name,
		capacity: capacity,
	}
}

// Name returns the plug name.
func (p *SmartPlug) Name() string { return p.name }

// Kind returns KindSmartPlug.
func (p *SmartPlug) Kind() Kind { return KindSmartPlug }

// Capacity returns the rated capacity.
func (p *SmartPlug) Capacity() uint16 { return p.capacity }

// IsOn reports the current power status.
func (p *SmartPlug) IsOn() bool { return p.on }

// TurnOn switches the plug on. Switching an already-on plug is a no-op.
func (p *SmartPlug) TurnOn() { p.on = true }

// TurnOff switches the plug off. Switching an already-off plug is a no-op.
func (p *SmartPlug) TurnOff() { p.on = false }

// Report renders name, power status and capacity.
func (p *SmartPlug) Report() string {
	return fmt.Sprintf("Smart plug %s, status %s, capacity %d", p.name, onOff(p.on), p.capacity)
}

func (p *SmartPlug) sealed() {}

// Thermometer reports a temperature fixed at construction.
type Thermometer struct {
	name        string
	temperature uint16
}

// NewThermometer creates a thermometer reading temperature.
func NewThermometer(name string, temperature uint16) *Thermometer {
	return &Thermometer{
		name:        name,
		temperature: temperature,
	}
}

// Name returns the thermometer name.
func (t *Thermometer) Name() string { return t.name }

// Kind returns KindThermometer.
func (t *Thermometer) Kind() Kind { return KindThermometer }

// Temperature returns the current reading.
func (t *Thermometer) Temperature() uint16 { return t.temperature }

// Report renders name and current temperature.
func (t *Thermometer) Report() string {
	return fmt.Sprintf("Thermometer %s: current temperature %d", t.name, t.temperature)
}

func (t *Thermometer) sealed() {}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
