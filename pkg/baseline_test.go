package pmtconfig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBaselineOddSamples(t *testing.T) {
	waveforms := []Waveform{
		{Channel: 0, Samples: []int16{14998, 15003, 15001}},
	}
	assert.Equal(t, 15001.0, ComputeBaseline(waveforms))
}

func TestComputeBaselineEvenSamples(t *testing.T) {
	// Median over the concatenation of both waveforms, even count gives
	// the mean of the two middle samples.
	waveforms := []Waveform{
		{Channel: 0, Samples: []int16{14998, 15004}},
		{Channel: 0, Samples: []int16{15000, 15010}},
	}
	assert.Equal(t, 15002.0, ComputeBaseline(waveforms))
}

func TestComputeBaselineEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(ComputeBaseline(nil)))
	assert.True(t, math.IsNaN(ComputeBaseline([]Waveform{{Channel: 2, Samples: nil}})))
}

func TestGroupWaveformsByChannelInferred(t *testing.T) {
	waveforms := []Waveform{
		{Channel: 4, Samples: []int16{1}},
		{Channel: 1, Samples: []int16{2}},
		{Channel: 4, Samples: []int16{3}},
	}
	grouped := GroupWaveformsByChannel(waveforms, 0)
	require.Len(t, grouped, 5)
	assert.Empty(t, grouped[0])
	assert.Len(t, grouped[1], 1)
	assert.Empty(t, grouped[2])
	assert.Empty(t, grouped[3])
	assert.Len(t, grouped[4], 2)
}

func TestGroupWaveformsByChannelFixedSize(t *testing.T) {
	waveforms := []Waveform{
		{Channel: 1, Samples: []int16{2}},
	}
	grouped := GroupWaveformsByChannel(waveforms, 8)
	require.Len(t, grouped, 8)
	assert.Len(t, grouped[1], 1)
}

func TestGroupWaveformsByChannelNoWaveforms(t *testing.T) {
	assert.Empty(t, GroupWaveformsByChannel(nil, 0))
}

func TestEventBaselines(t *testing.T) {
	event := EventType{
		EventID: 42,
		Waveforms: []Waveform{
			{Channel: 0, Samples: []int16{10, 20, 30}},
			{Channel: 2, Samples: []int16{5, 7}},
		},
	}
	baselines := EventBaselines(event, 0)
	require.Len(t, baselines, 3)
	assert.Equal(t, 20.0, baselines[0])
	assert.True(t, math.IsNaN(baselines[1]))
	assert.Equal(t, 6.0, baselines[2])
}

func TestRemapChannels(t *testing.T) {
	mapping := SensorMapping{
		ToElecID:   map[uint16]uint16{7: 100, 8: 101},
		ToSensorID: map[uint16]uint16{100: 7, 101: 8},
	}
	event := EventType{
		Waveforms: []Waveform{
			{Channel: 100, Samples: []int16{1}},
			{Channel: 101, Samples: []int16{2}},
			{Channel: 55, Samples: []int16{3}},
		},
	}
	RemapChannels(&event, mapping)
	assert.Equal(t, uint16(7), event.Waveforms[0].Channel)
	assert.Equal(t, uint16(8), event.Waveforms[1].Channel)
	// Channels missing from the mapping stay untouched
	assert.Equal(t, uint16(55), event.Waveforms[2].Channel)
}
