package pmtconfig

import (
	"math"
	"sort"
)

// GroupWaveformsByChannel splits waveforms into fixed-size per-channel
// buckets. When nChannels is zero the bucket count is inferred from the
// highest channel ID present.
func GroupWaveformsByChannel(waveforms []Waveform, nChannels int) [][]Waveform {
	byChannel := make(map[uint16][]Waveform)
	maxChannel := -1
	for _, wave := range waveforms {
		byChannel[wave.Channel] = append(byChannel[wave.Channel], wave)
		if int(wave.Channel) > maxChannel {
			maxChannel = int(wave.Channel)
		}
	}
	if nChannels == 0 {
		nChannels = maxChannel + 1
	}
	grouped := make([][]Waveform, nChannels)
	for channel := 0; channel < nChannels; channel++ {
		grouped[channel] = byChannel[uint16(channel)]
	}
	return grouped
}

// ComputeBaseline estimates the baseline shared by a set of waveforms as
// the median of all their samples concatenated. An even sample count gives
// the mean of the two middle values, an empty set gives NaN.
func ComputeBaseline(waveforms []Waveform) float64 {
	nSamples := 0
	for _, wave := range waveforms {
		nSamples += len(wave.Samples)
	}
	if nSamples == 0 {
		return math.NaN()
	}
	samples := make([]int16, 0, nSamples)
	for _, wave := range waveforms {
		samples = append(samples, wave.Samples...)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	middle := len(samples) / 2
	if len(samples)%2 == 1 {
		return float64(samples[middle])
	}
	return (float64(samples[middle-1]) + float64(samples[middle])) / 2
}

// EventBaselines computes the per-channel baseline estimates of one event.
func EventBaselines(event EventType, nChannels int) []float64 {
	grouped := GroupWaveformsByChannel(event.Waveforms, nChannels)
	baselines := make([]float64, len(grouped))
	for channel, channelWaveforms := range grouped {
		baselines[channel] = ComputeBaseline(channelWaveforms)
	}
	return baselines
}

// RemapChannels rewrites electronics channel IDs to offline IDs using the
// database channel mapping. Channels missing from the mapping are left
// untouched.
func RemapChannels(event *EventType, mapping SensorMapping) {
	for i, wave := range event.Waveforms {
		if sensorID, ok := mapping.ToSensorID[wave.Channel]; ok {
			event.Waveforms[i].Channel = sensorID
		}
	}
}
