package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	fieldsPer    = 5
)

// ErrEmptyTimeline is returned when saving a run with no snapshots.
var ErrEmptyTimeline = errors.New("storage: empty timeline")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string               `json:"id"`
	Scenario      string               `json:"scenario"`
	Timestamp     time.Time            `json:"timestamp"`
	Star          dynamo.Star          `json:"star"`
	HabitableZone dynamo.HabitableZone `json:"habitable_zone"`
	Dt            float64              `json:"dt"`
	Epsilon       float64              `json:"epsilon"`
	Steps         int                  `json:"steps"`
	Particles     int                  `json:"particles"`
	StartTime     float64              `json:"start_time"`
	EndTime       float64              `json:"end_time"`
	Metrics       map[string]float64   `json:"metrics"`
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run id.
func (s *Store) Save(scenario string, timeline []dynamo.Snapshot, metrics map[string]float64) (string, error) {
	if len(timeline) == 0 {
		return "", ErrEmptyTimeline
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	first, last := timeline[0], timeline[len(timeline)-1]
	meta := RunMetadata{
		ID:            runID,
		Scenario:      scenario,
		Timestamp:     now,
		Star:          first.Star,
		HabitableZone: first.HabitableZone,
		Dt:            first.Dt,
		Epsilon:       first.Epsilon,
		Steps:         len(timeline),
		Particles:     len(first.Particles),
		StartTime:     first.T,
		EndTime:       last.T,
		Metrics:       metrics,
	}

	err := writeJSON(filepath.Join(runDir, metadataFile), meta)
	if err == nil {
		err = writeStates(filepath.Join(runDir, statesFile), timeline)
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

// createFile runs write against a new file at path and reports the first
// error from writing or closing it.
func createFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeJSON(path string, v any) error {
	return createFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeStates(path string, timeline []dynamo.Snapshot) error {
	return createFile(path, func(f io.Writer) error {
		return encodeStates(f, timeline)
	})
}

func encodeStates(f io.Writer, timeline []dynamo.Snapshot) error {
	w := csv.NewWriter(f)

	n := len(timeline[0].Particles)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		for _, field := range []string{"x", "y", "vx", "vy", "mass"} {
			header = append(header, fmt.Sprintf("p%d_%s", i, field))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, snap := range timeline {
		row := []string{formatFloat(snap.T)}
		for _, p := range snap.Particles {
			mass := ""
			if p.Mass != nil {
				mass = formatFloat(*p.Mass)
			}
			row = append(row, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.VX), formatFloat(p.VY), mass)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatFloat keeps full precision so reloaded timelines match bit for bit.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTimeline rebuilds the snapshots of a saved run.
func (s *Store) LoadTimeline(runID string) ([]dynamo.Snapshot, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamo.Snapshot{}, nil
	}

	timeline := make([]dynamo.Snapshot, 0, len(records)-1)
	for line, record := range records[1:] {
		snap, err := parseRow(record, meta)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", statesFile, line+2, err)
		}
		timeline = append(timeline, snap)
	}

	return timeline, nil
}

func parseRow(record []string, meta *RunMetadata) (dynamo.Snapshot, error) {
	if len(record) == 0 || (len(record)-1)%fieldsPer != 0 {
		return dynamo.Snapshot{}, fmt.Errorf("malformed row with %d fields", len(record))
	}

	t, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return dynamo.Snapshot{}, err
	}

	n := (len(record) - 1) / fieldsPer
	particles := make([]dynamo.Particle, n)
	for i := range particles {
		cols := record[1+i*fieldsPer : 1+(i+1)*fieldsPer]
		vals := make([]float64, 4)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(cols[j], 64); err != nil {
				return dynamo.Snapshot{}, err
			}
		}
		p := dynamo.Particle{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]}
		if cols[4] != "" {
			m, err := strconv.ParseFloat(cols[4], 64)
			if err != nil {
				return dynamo.Snapshot{}, err
			}
			p.Mass = &m
		}
		particles[i] = p
	}

	return dynamo.Snapshot{
		T:             t,
		Dt:            meta.Dt,
		Epsilon:       meta.Epsilon,
		Star:          meta.Star,
		HabitableZone: meta.HabitableZone,
		Particles:     particles,
	}, nil
}
