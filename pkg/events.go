package pmtconfig

// Event types found in the raw files
const (
	START_OF_RUN = iota + 1
	END_OF_RUN
	PHYSICS_EVENT
	CALIBRATION_EVENT
)

// EventHeaderStruct is the fixed-size header opening every event in the
// raw waveform files. All fields are little endian. EventSize counts the
// header itself plus the payload.
type EventHeaderStruct struct {
	EventSize       uint32
	EventType       uint32
	EventId         uint32
	EventRunNb      uint32
	EventTimestamp  uint64
	EventNWaveforms uint32
	EventGdcId      uint32
}

// WaveformHeaderStruct opens each waveform block in the event payload,
// followed by NSamples int16 samples.
type WaveformHeaderStruct struct {
	Channel  uint32
	NSamples uint32
}

type Waveform struct {
	Channel uint16
	Samples []int16
}

type EventType struct {
	RunNumber uint32
	EventID   uint32
	Timestamp uint64
	Waveforms []Waveform
	Error     bool
}

func ValidEvent(header EventHeaderStruct) bool {
	return header.EventType == PHYSICS_EVENT || header.EventType == CALIBRATION_EVENT
}
