package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Meta summarises the run that produced the frames.
type Meta struct {
	Steps         int                  `json:"steps"`
	Dt            float64              `json:"dt"`
	CentralMass   float64              `json:"central_mass"`
	Epsilon       float64              `json:"epsilon"`
	Star          dynamo.Star          `json:"star"`
	HabitableZone dynamo.HabitableZone `json:"habitable_zone"`
}

// Document is the playback file consumed by the browser frontend.
type Document struct {
	Meta   Meta              `json:"meta"`
	Frames []dynamo.Snapshot `json:"frames"`
}

// NewDocument wraps a timeline. An empty timeline yields zero meta.
func NewDocument(timeline []dynamo.Snapshot) Document {
	doc := Document{Frames: timeline}
	if doc.Frames == nil {
		doc.Frames = []dynamo.Snapshot{}
	}
	if len(timeline) > 0 {
		first := timeline[0]
		doc.Meta = Meta{
			Steps:         len(timeline),
			Dt:            first.Dt,
			CentralMass:   first.Star.Mass,
			Epsilon:       first.Epsilon,
			Star:          first.Star,
			HabitableZone: first.HabitableZone,
		}
	}
	return doc
}

func WriteJSON(w io.Writer, timeline []dynamo.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(timeline))
}

func ExportJSON(path string, timeline []dynamo.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, timeline)
}
