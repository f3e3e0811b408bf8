package main

import (
	"fmt"
	"io"
	"os"

	lightmap "github.com/nexo-exp/lightmap_go/pkg"
)

type FileReader struct {
	File     *os.File
	EvtCount int
}

func NewFileReader(file *os.File) *FileReader {
	return &FileReader{File: file, EvtCount: -1}
}

func (f *FileReader) getNextEvent() (lightmap.EventType, error) {
	event, err := lightmap.ReadEvent(f.File)
	if err != nil {
		return event, err
	}
	f.EvtCount++
	if f.EvtCount >= configuration.MaxEvents {
		if VerbosityLevel > 0 {
			logger.Info("Max events reached", "fileReader")
		}
		return event, io.EOF
	}
	if f.EvtCount < configuration.Skip {
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Skipping event %d with ID %d", f.EvtCount, event.EventID)
			logger.Info(message, "fileReader")
		}
		return f.getNextEvent()
	}
	if VerbosityLevel > 1 {
		message := fmt.Sprintf("Reading event %d with ID %d", f.EvtCount, event.EventID)
		logger.Info(message, "fileReader")
	}
	return event, nil
}

func readAllEvents(file *os.File) ([]lightmap.EventType, error) {
	fileReader := NewFileReader(file)
	events := make([]lightmap.EventType, 0)
	for {
		event, err := fileReader.getNextEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
