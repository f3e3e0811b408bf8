package lightmap

// NoiseTag is the per-channel noise flag. The simulation writes it either as
// a single sample or as one sample per time bin, so it is kept array-valued
// and a channel counts as noise if any sample is nonzero.
type NoiseTag []uint8

func (t NoiseTag) Truthy() bool {
	for _, v := range t {
		if v != 0 {
			return true
		}
	}
	return false
}

type EventType struct {
	EventID        int32
	RunNumber      int32
	InitialPhotons int32
	LocalID        []uint16
	Charge         []float64
	Time           []float64
	XPosition      []float64
	YPosition      []float64
	NoiseTag       []NoiseTag
	Error          bool
}

func (e *EventType) NumChannels() int {
	return len(e.Charge)
}

// Validate checks the parallel channel arrays once at ingestion.
func (e *EventType) Validate() error {
	want := len(e.Charge)
	fields := []struct {
		name string
		got  int
	}{
		{"localId", len(e.LocalID)},
		{"time", len(e.Time)},
		{"xPosition", len(e.XPosition)},
		{"yPosition", len(e.YPosition)},
		{"noiseTag", len(e.NoiseTag)},
	}
	for _, f := range fields {
		if f.got != want {
			return &ErrMismatchedChannelArrays{
				EventID: e.EventID,
				Field:   f.name,
				Got:     f.got,
				Want:    want,
			}
		}
	}
	return nil
}
