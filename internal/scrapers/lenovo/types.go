package lenovo

import "fmt"

// Record is the flattened view of an ibase info response. Every field is
// trimmed, an empty string means the vendor did not send it.
type Record struct {
	ProductName    string
	Serial         string
	MachineType    string
	Product        string
	Model          string
	Family         string
	ShipToCountry  string
	WarrantyStatus string
	PlanName       string
	DeliveryType   string
	StartDate      string
	EndDate        string
	FullId         string
	Group          string
	Series         string
	SubSeries      string
	// Specification is the raw HTML spec table.
	Specification string
}

// SpecMap maps a spec category ("Processor", "Memory", ...) to its value,
// remembering the order categories were first seen in. The zero value is an
// empty map ready to use.
type SpecMap struct {
	keys   []string
	values map[string]string
}

type SpecEntry struct {
	Key   string
	Value string
}

// SetIfAbsent stores value under key unless key is already present, it
// reports whether the value was stored.
func (m *SpecMap) SetIfAbsent(key, value string) bool {
	if _, exists := m.values[key]; exists {
		return false
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return true
}

func (m SpecMap) Get(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m SpecMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m SpecMap) Entries() []SpecEntry {
	out := make([]SpecEntry, len(m.keys))
	for i, k := range m.keys {
		out[i] = SpecEntry{Key: k, Value: m.values[k]}
	}
	return out
}

func (m SpecMap) Len() int {
	return len(m.keys)
}

// Lookup is everything derived from a single ibase info response.
type Lookup struct {
	// QueriedSerial is the normalized serial the lookup was made with, the
	// record's own serial may be missing.
	QueriedSerial string
	Record        Record
	Spec          SpecMap
	ProductKey    string
	ProductUrl    string
}

// TransportError is returned when the request could not be made or the API
// answered with a non-2xx status.
type TransportError struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lenovo api returned %s", e.Status)
	}
	return fmt.Sprintf("lenovo api request failed: %s", e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the response is not a JSON object,
// or when its data root is present but is not an object.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed lenovo api response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed lenovo api response: %s: %s", e.Reason, e.Err.Error())
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
