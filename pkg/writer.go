package lightmap

import (
	"errors"
	"fmt"
	"reflect"

	hdf5 "github.com/next-exp/hdf5-go"
)

// Writer persists an ObservableSet to an HDF5 file with the layout
// /Run/runInfo, /Observables/params and /Observables/events.
type Writer struct {
	File             *hdf5.File
	Filename         string
	RunGroup         *hdf5.Group
	ObservablesGroup *hdf5.Group
	RunInfoTable     *hdf5.Dataset
	ParamsTable      *hdf5.Dataset
	EventTable       *hdf5.Dataset
	EvtCounter       int
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.ObservablesGroup = createGroup(writer.File, "Observables")
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.ParamsTable = createTable(writer.ObservablesGroup, "params", ParamHDF5{})
	writer.EventTable = createTable(writer.ObservablesGroup, "events", ObservableRecordHDF5{})
	writer.EvtCounter = 0
	return writer
}

// WriteObservables writes the whole table in one extension of the dataset.
// The array is allocated at its final size up front, HDF5 panics on appends.
func (w *Writer) WriteObservables(set *ObservableSet, runNumber int, params Params) {
	writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(runNumber)}, 0)
	w.writeParams(params)

	records := make([]ObservableRecordHDF5, set.Len())
	for i := 0; i < set.Len(); i++ {
		records[i] = ObservableRecordHDF5{
			num_channels_in_evt:                         set.NumChannelsInEvt[i],
			evt_charge_including_noise:                  set.EvtChargeIncludingNoise[i],
			evt_charge_excluding_noise:                  set.EvtChargeExcludingNoise[i],
			evt_charge_above_threshold:                  set.EvtChargeAboveThreshold[i],
			num_channels_above_threshold:                set.NumChannelsAboveThreshold[i],
			num_channels_excluding_noise:                set.NumChannelsExcludingNoise[i],
			num_channels_collection:                     set.NumChannelsCollection[i],
			num_collection_below_threshold:              set.NumCollectionBelowThreshold[i],
			num_channels_induction:                      set.NumChannelsInduction[i],
			num_channels_nonzero_charge_with_noise:      set.NumChannelsNonzeroChargeWithNoise[i],
			num_channels_nonzero_charge_excluding_noise: set.NumChannelsNonzeroChargeExcludingNoise[i],
			weighted_x:              set.WeightedX[i],
			weighted_y:              set.WeightedY[i],
			weighted_radius:         set.WeightedRadius[i],
			weighted_drift:          set.WeightedDrift[i],
			detected_photoelectrons: set.DetectedPhotoelectrons[i],
			initial_photons:         set.InitialPhotons[i],
		}
	}
	writeArrayToTable(w.EventTable, &records, w.EvtCounter)
	w.EvtCounter += len(records)
}

func (w *Writer) writeParams(params Params) {
	t := reflect.TypeOf(params)
	n := t.NumField()
	entries := make([]ParamHDF5, n)

	fieldsToWrite := 0
	for i := 0; i < n; i++ {
		f := t.Field(i)
		var value float64
		switch f.Type.Kind() {
		case reflect.Float64:
			value = reflect.ValueOf(params).Field(i).Interface().(float64)
		case reflect.Uint64:
			value = float64(reflect.ValueOf(params).Field(i).Interface().(uint64))
		default:
			continue
		}
		entries[fieldsToWrite] = ParamHDF5{
			paramStr: convertToHdf5String(f.Name),
			value:    value,
		}
		fieldsToWrite++
	}
	toWrite := entries[:fieldsToWrite]
	writeArrayToTable(w.ParamsTable, &toWrite, 0)
}

func (w *Writer) Close() error {
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.ParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing params table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.ObservablesGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing observables group: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
