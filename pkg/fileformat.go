package lightmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// EventHeaderStruct is the fixed-size header preceding each event in a
// simulated electronics file. EventSize is the payload size in bytes, so a
// reader can skip events without decoding them.
type EventHeaderStruct struct {
	EventID        int32
	RunNumber      int32
	InitialPhotons int32
	NumChannels    int32
	EventSize      int32
}

// Payload layout, little endian, all arrays of NumChannels length:
// localId []uint16, charge []float64, time []float64, xPosition []float64,
// yPosition []float64, then per channel a uint16 sample count followed by
// that many noise-tag bytes.

func eventPayloadSize(event *EventType) int32 {
	nch := event.NumChannels()
	size := 2*nch + 4*8*nch
	for _, tag := range event.NoiseTag {
		size += 2 + len(tag)
	}
	return int32(size)
}

// ReadEvent decodes one event from r. The decoded event is validated, so a
// truncated or corrupted record is reported before it reaches the extractor.
func ReadEvent(r io.Reader) (EventType, error) {
	var event EventType
	var header EventHeaderStruct
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return event, err
	}

	nch := int(header.NumChannels)
	event.EventID = header.EventID
	event.RunNumber = header.RunNumber
	event.InitialPhotons = header.InitialPhotons
	event.LocalID = make([]uint16, nch)
	event.Charge = make([]float64, nch)
	event.Time = make([]float64, nch)
	event.XPosition = make([]float64, nch)
	event.YPosition = make([]float64, nch)
	event.NoiseTag = make([]NoiseTag, nch)

	arrays := []any{event.LocalID, event.Charge, event.Time, event.XPosition, event.YPosition}
	for _, array := range arrays {
		if err := binary.Read(r, binary.LittleEndian, array); err != nil {
			return event, fmt.Errorf("error reading event %d payload: %w", header.EventID, err)
		}
	}

	for i := 0; i < nch; i++ {
		var nSamples uint16
		if err := binary.Read(r, binary.LittleEndian, &nSamples); err != nil {
			return event, fmt.Errorf("error reading event %d noise tags: %w", header.EventID, err)
		}
		tag := make(NoiseTag, nSamples)
		if err := binary.Read(r, binary.LittleEndian, tag); err != nil {
			return event, fmt.Errorf("error reading event %d noise tags: %w", header.EventID, err)
		}
		event.NoiseTag[i] = tag
	}

	if err := event.Validate(); err != nil {
		return event, err
	}
	return event, nil
}

// WriteEvent encodes one event to w in the file format read by ReadEvent.
func WriteEvent(w io.Writer, event *EventType) error {
	if err := event.Validate(); err != nil {
		return err
	}
	header := EventHeaderStruct{
		EventID:        event.EventID,
		RunNumber:      event.RunNumber,
		InitialPhotons: event.InitialPhotons,
		NumChannels:    int32(event.NumChannels()),
		EventSize:      eventPayloadSize(event),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	arrays := []any{event.LocalID, event.Charge, event.Time, event.XPosition, event.YPosition}
	for _, array := range arrays {
		if err := binary.Write(w, binary.LittleEndian, array); err != nil {
			return err
		}
	}
	for _, tag := range event.NoiseTag {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(tag))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, tag); err != nil {
			return err
		}
	}
	return nil
}

// CountEvents scans the whole file by seeking from header to header, then
// rewinds. It also reports the run number found in the headers.
func CountEvents(file *os.File) (int, int) {
	evtCount := 0
	runNumber := 0
	for {
		var header EventHeaderStruct
		headerSize := unsafe.Sizeof(header)
		headerBinary := make([]byte, headerSize)
		nRead, err := file.Read(headerBinary)
		if err != nil {
			if err != io.EOF && logger != nil {
				errMessage := fmt.Errorf("error reading header counting events: %w", err)
				logger.Error(errMessage.Error())
			}
			break
		}
		if nRead == 0 {
			break
		}

		headerReader := bytes.NewReader(headerBinary)
		binary.Read(headerReader, binary.LittleEndian, &header)
		runNumber = int(header.RunNumber)
		file.Seek(int64(header.EventSize), 1)
		evtCount++
	}
	// Go back to the beginning of the file
	file.Seek(0, 0)
	return evtCount, runNumber
}
