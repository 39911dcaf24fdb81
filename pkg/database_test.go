package pmtconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownChannels(t *testing.T) {
	mapping := SensorMapping{
		ToElecID:   map[uint16]uint16{350: 12, 342: 13},
		ToSensorID: map[uint16]uint16{12: 350, 13: 342},
	}
	settings := []ChannelRecord{
		{Channel: 342, BoardNumber: 3, BoardChannel: 1},
		{Channel: 350, BoardNumber: 3, BoardChannel: 0},
		{Channel: 999, BoardNumber: 4, BoardChannel: 0},
	}
	assert.Equal(t, []int{999}, UnknownChannels(settings, mapping))
	assert.Empty(t, UnknownChannels(settings[:2], mapping))
}
