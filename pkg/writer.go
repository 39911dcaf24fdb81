package pmtconfig

import (
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/maps"
)

// Writer stores per-event baseline estimates in an HDF5 file. The layout
// follows the decoder output files: run metadata under /Run, raw-data
// level quantities under /RD and the channel mapping under /Sensors.
type Writer struct {
	File         *hdf5.File
	Filename     string
	FirstEvt     bool
	RunGroup     *hdf5.Group
	RDGroup      *hdf5.Group
	SensorsGroup *hdf5.Group
	EventTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	MappingTable *hdf5.Dataset
	Baselines    *hdf5.Dataset
	NChannels    int
	EvtCounter   int
}

func NewWriter(filename string) *Writer {
	writer := &Writer{}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating output file: %s", filename)
		logger.Info(message, "writer")
	}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.RDGroup = createGroup(writer.File, "RD")
	writer.SensorsGroup = createGroup(writer.File, "Sensors")
	writer.EventTable = createTable(writer.RunGroup, "events", EventDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.MappingTable = createTable(writer.SensorsGroup, "ChannelMapping", SensorMappingHDF5{})
	writer.EvtCounter = 0
	return writer
}

func sortSensorsBySensorID(toSensorID map[uint16]uint16) []SensorMappingHDF5 {
	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	elecIDs := maps.Keys(toSensorID)
	sorted := make([]SensorMappingHDF5, len(elecIDs))
	for i, elecID := range elecIDs {
		sorted[i] = SensorMappingHDF5{
			channel:  int32(elecID),
			sensorID: int32(toSensorID[elecID]),
		}
	}

	// Sort by sensorID
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].sensorID < sorted[j].sensorID
	})
	return sorted
}

// WriteEvent appends one event row and its per-channel baselines. The
// baselines dataset is created on the first event, its width is fixed by
// the first baselines slice written.
func (w *Writer) WriteEvent(event *EventType, baselines []float64) {
	evtData := EventDataHDF5{
		evt_number: int32(event.EventID),
		timestamp:  event.Timestamp,
	}

	if !w.FirstEvt {
		writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(event.RunNumber)}, w.EvtCounter)
		if !configuration.NoDB {
			mappingSorted := sortSensorsBySensorID(sensorsMap.ToSensorID)
			writeArrayToTable(w.MappingTable, &mappingSorted, 0)
		}
		w.NChannels = len(baselines)
		w.Baselines = create2dArray(w.RDGroup, "baselines", w.NChannels)
		w.FirstEvt = true
	}

	writeEntryToTable(w.EventTable, evtData, w.EvtCounter)
	write2dArray(w.Baselines, &baselines, w.EvtCounter, w.NChannels)
	w.EvtCounter++
}

func (w *Writer) Close() {
	w.File.Close()
}
