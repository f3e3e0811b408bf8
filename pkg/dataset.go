package lightmap

// ObservableSet is the output table of the extraction, one entry per event in
// input order. It is laid out as parallel columns and allocated up front so
// workers can fill disjoint rows concurrently.
type ObservableSet struct {
	NumChannelsInEvt                       []int32
	EvtChargeIncludingNoise                []float64
	EvtChargeExcludingNoise                []float64
	EvtChargeAboveThreshold                []float64
	NumChannelsAboveThreshold              []int32
	NumChannelsExcludingNoise              []int32
	NumChannelsCollection                  []int32
	NumCollectionBelowThreshold            []int32
	NumChannelsInduction                   []int32
	NumChannelsNonzeroChargeWithNoise      []int32
	NumChannelsNonzeroChargeExcludingNoise []int32
	WeightedX                              []float64
	WeightedY                              []float64
	WeightedRadius                         []float64
	WeightedDrift                          []float64
	DetectedPhotoelectrons                 []int64
	InitialPhotons                         []int64
}

func NewObservableSet(numEvents int) *ObservableSet {
	return &ObservableSet{
		NumChannelsInEvt:                       make([]int32, numEvents),
		EvtChargeIncludingNoise:                make([]float64, numEvents),
		EvtChargeExcludingNoise:                make([]float64, numEvents),
		EvtChargeAboveThreshold:                make([]float64, numEvents),
		NumChannelsAboveThreshold:              make([]int32, numEvents),
		NumChannelsExcludingNoise:              make([]int32, numEvents),
		NumChannelsCollection:                  make([]int32, numEvents),
		NumCollectionBelowThreshold:            make([]int32, numEvents),
		NumChannelsInduction:                   make([]int32, numEvents),
		NumChannelsNonzeroChargeWithNoise:      make([]int32, numEvents),
		NumChannelsNonzeroChargeExcludingNoise: make([]int32, numEvents),
		WeightedX:                              make([]float64, numEvents),
		WeightedY:                              make([]float64, numEvents),
		WeightedRadius:                         make([]float64, numEvents),
		WeightedDrift:                          make([]float64, numEvents),
		DetectedPhotoelectrons:                 make([]int64, numEvents),
		InitialPhotons:                         make([]int64, numEvents),
	}
}

func (s *ObservableSet) Len() int {
	return len(s.NumChannelsInEvt)
}

func (s *ObservableSet) SetRecord(i int, rec ObservableRecord) {
	s.NumChannelsInEvt[i] = rec.NumChannelsInEvt
	s.EvtChargeIncludingNoise[i] = rec.EvtChargeIncludingNoise
	s.EvtChargeExcludingNoise[i] = rec.EvtChargeExcludingNoise
	s.EvtChargeAboveThreshold[i] = rec.EvtChargeAboveThreshold
	s.NumChannelsAboveThreshold[i] = rec.NumChannelsAboveThreshold
	s.NumChannelsExcludingNoise[i] = rec.NumChannelsExcludingNoise
	s.NumChannelsCollection[i] = rec.NumChannelsCollection
	s.NumCollectionBelowThreshold[i] = rec.NumCollectionBelowThreshold
	s.NumChannelsInduction[i] = rec.NumChannelsInduction
	s.NumChannelsNonzeroChargeWithNoise[i] = rec.NumChannelsNonzeroChargeWithNoise
	s.NumChannelsNonzeroChargeExcludingNoise[i] = rec.NumChannelsNonzeroChargeExcludingNoise
	s.WeightedX[i] = rec.WeightedX
	s.WeightedY[i] = rec.WeightedY
	s.WeightedRadius[i] = rec.WeightedRadius
	s.WeightedDrift[i] = rec.WeightedDrift
	s.DetectedPhotoelectrons[i] = rec.DetectedPhotoelectrons
	s.InitialPhotons[i] = rec.InitialPhotons
}

func (s *ObservableSet) Record(i int) ObservableRecord {
	return ObservableRecord{
		NumChannelsInEvt:                       s.NumChannelsInEvt[i],
		EvtChargeIncludingNoise:                s.EvtChargeIncludingNoise[i],
		EvtChargeExcludingNoise:                s.EvtChargeExcludingNoise[i],
		EvtChargeAboveThreshold:                s.EvtChargeAboveThreshold[i],
		NumChannelsAboveThreshold:              s.NumChannelsAboveThreshold[i],
		NumChannelsExcludingNoise:              s.NumChannelsExcludingNoise[i],
		NumChannelsCollection:                  s.NumChannelsCollection[i],
		NumCollectionBelowThreshold:            s.NumCollectionBelowThreshold[i],
		NumChannelsInduction:                   s.NumChannelsInduction[i],
		NumChannelsNonzeroChargeWithNoise:      s.NumChannelsNonzeroChargeWithNoise[i],
		NumChannelsNonzeroChargeExcludingNoise: s.NumChannelsNonzeroChargeExcludingNoise[i],
		WeightedX:                              s.WeightedX[i],
		WeightedY:                              s.WeightedY[i],
		WeightedRadius:                         s.WeightedRadius[i],
		WeightedDrift:                          s.WeightedDrift[i],
		DetectedPhotoelectrons:                 s.DetectedPhotoelectrons[i],
		InitialPhotons:                         s.InitialPhotons[i],
	}
}
