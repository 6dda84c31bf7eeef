package ingest

import (
	"fmt"
	"iter"

	"github.com/poiesic/lifepilot/core"
)

// Connector identifies a source-specific adapter that parses one JSON export
// format into uniform records.
type Connector string

const (
	ConnectorCalendar Connector = "calendar"
	ConnectorVision   Connector = "vision"
	ConnectorAudio    Connector = "audio"
)

// Connectors lists every supported connector.
var Connectors = []Connector{ConnectorCalendar, ConnectorVision, ConnectorAudio}

// Loader parses one export file into a finite, restartable sequence of
// (record, metadata) pairs. An unreadable or malformed file is a fatal error
// for that file; a readable file missing the expected array yields an empty
// sequence.
type Loader func(path string) (iter.Seq2[core.Record, core.Metadata], error)

// LoaderFor returns the loader for the given connector.
func LoaderFor(connector Connector) (Loader, error) {
	switch connector {
	case ConnectorCalendar:
		return LoadCalendarFile, nil
	case ConnectorVision:
		return LoadVisionFile, nil
	case ConnectorAudio:
		return LoadAudioFile, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, connector)
	}
}

// ParseConnector validates a connector name from user input.
func ParseConnector(name string) (Connector, error) {
	connector := Connector(name)
	if _, err := LoaderFor(connector); err != nil {
		return "", err
	}
	return connector, nil
}
