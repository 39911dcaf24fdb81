package pmtconfig

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEvent(t *testing.T, eventType uint32, waveforms []Waveform) []byte {
	t.Helper()
	var payload bytes.Buffer
	for _, wave := range waveforms {
		wfHeader := WaveformHeaderStruct{
			Channel:  uint32(wave.Channel),
			NSamples: uint32(len(wave.Samples)),
		}
		require.NoError(t, binary.Write(&payload, binary.LittleEndian, wfHeader))
		require.NoError(t, binary.Write(&payload, binary.LittleEndian, wave.Samples))
	}

	var header EventHeaderStruct
	headerSize := uint32(unsafe.Sizeof(header))
	header = EventHeaderStruct{
		EventSize:       headerSize + uint32(payload.Len()),
		EventType:       eventType,
		EventId:         7,
		EventRunNb:      9551,
		EventTimestamp:  1675429200,
		EventNWaveforms: uint32(len(waveforms)),
	}

	var buffer bytes.Buffer
	require.NoError(t, binary.Write(&buffer, binary.LittleEndian, header))
	buffer.Write(payload.Bytes())
	return buffer.Bytes()
}

func TestReadAndDecodeEvent(t *testing.T) {
	waveforms := []Waveform{
		{Channel: 1, Samples: []int16{14998, 15003, 15001}},
		{Channel: 0, Samples: []int16{-5, 12}},
	}
	data := buildEvent(t, PHYSICS_EVENT, waveforms)

	header, eventData, err := ReadEvent(data)
	require.NoError(t, err)
	assert.True(t, ValidEvent(header))
	assert.Equal(t, uint32(2), header.EventNWaveforms)

	event, err := DecodeEvent(eventData, header)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), event.EventID)
	assert.Equal(t, uint32(9551), event.RunNumber)
	assert.Equal(t, uint64(1675429200), event.Timestamp)
	assert.Equal(t, waveforms, event.Waveforms)
}

func TestReadEventTooShort(t *testing.T) {
	_, _, err := ReadEvent([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestDecodeEventTruncatedPayload(t *testing.T) {
	waveforms := []Waveform{{Channel: 3, Samples: []int16{1, 2, 3, 4}}}
	data := buildEvent(t, PHYSICS_EVENT, waveforms)

	header, eventData, err := ReadEvent(data)
	require.NoError(t, err)

	event, err := DecodeEvent(eventData[:len(eventData)-2], header)
	require.Error(t, err)
	assert.True(t, event.Error)
}

func TestValidEvent(t *testing.T) {
	assert.True(t, ValidEvent(EventHeaderStruct{EventType: PHYSICS_EVENT}))
	assert.True(t, ValidEvent(EventHeaderStruct{EventType: CALIBRATION_EVENT}))
	assert.False(t, ValidEvent(EventHeaderStruct{EventType: START_OF_RUN}))
	assert.False(t, ValidEvent(EventHeaderStruct{EventType: END_OF_RUN}))
}
