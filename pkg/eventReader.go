package pmtconfig

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"
)

func ReadEventFromFile(file *os.File) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	headerBinary := make([]byte, headerSize)
	nRead, err := file.Read(headerBinary)
	if err != nil {
		return header, nil, err
	}

	if nRead == 0 {
		return header, nil, err
	}

	headerReader := bytes.NewReader(headerBinary)
	binary.Read(headerReader, binary.LittleEndian, &header)

	payloadSize := uint32(header.EventSize) - uint32(headerSize)
	eventData := make([]byte, payloadSize)
	file.Read(eventData)
	return header, eventData, nil
}

func ReadEvent(data []byte) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	if len(data) < int(headerSize) {
		return header, nil, fmt.Errorf("data is too short")
	}
	headerReader := bytes.NewReader(data[:headerSize])
	binary.Read(headerReader, binary.LittleEndian, &header)

	payloadSize := uint32(header.EventSize) - uint32(headerSize)
	eventData := data[headerSize : uint32(headerSize)+payloadSize]
	return header, eventData, nil
}

// DecodeEvent walks the waveform blocks of one event payload. Waveforms
// keep the order they have in the file, grouping happens later.
func DecodeEvent(eventData []byte, header EventHeaderStruct) (EventType, error) {
	event := EventType{
		RunNumber: header.EventRunNb,
		EventID:   header.EventId,
		Timestamp: header.EventTimestamp,
		Waveforms: make([]Waveform, 0, header.EventNWaveforms),
	}

	reader := bytes.NewReader(eventData)
	for i := uint32(0); i < header.EventNWaveforms; i++ {
		var wfHeader WaveformHeaderStruct
		if err := binary.Read(reader, binary.LittleEndian, &wfHeader); err != nil {
			errMessage := fmt.Errorf("error reading waveform header %d of event %d: %w", i, event.EventID, err)
			event.Error = true
			return event, errMessage
		}
		samples := make([]int16, wfHeader.NSamples)
		if err := binary.Read(reader, binary.LittleEndian, &samples); err != nil {
			errMessage := fmt.Errorf("error reading waveform %d of event %d: %w", i, event.EventID, err)
			event.Error = true
			return event, errMessage
		}
		event.Waveforms = append(event.Waveforms, Waveform{
			Channel: uint16(wfHeader.Channel),
			Samples: samples,
		})
	}
	return event, nil
}
