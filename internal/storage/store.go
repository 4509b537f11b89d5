// Package storage persists torque runs: one directory per run with JSON
// metadata and a CSV of per-step torque observables.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

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
	ID         string             `json:"id"`
	Mode       string             `json:"mode"`
	SHE        bool               `json:"she"`
	Timestamp  time.Time          `json:"timestamp"`
	Atoms      int                `json:"atoms"`
	Ensembles  int                `json:"ensembles"`
	Steps      int                `json:"steps"`
	AdiBeta    float64            `json:"adibeta"`
	SHEAngle   float64            `json:"she_angle"`
	Metrics    map[string]float64 `json:"metrics"`
}

// StepRecord is one row of the per-step torque history.
type StepRecord struct {
	Step    int
	STTMax  float64
	STTMean float64
	SHEMax  float64
}

// Save writes the run under a timestamped ID and returns it.
func (s *Store) Save(meta RunMetadata, history []StepRecord) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "torque.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "stt_max", "stt_mean", "she_max"}); err != nil {
		return "", err
	}
	for _, rec := range history {
		row := []string{
			strconv.Itoa(rec.Step),
			strconv.FormatFloat(rec.STTMax, 'g', -1, 64),
			strconv.FormatFloat(rec.STTMean, 'g', -1, 64),
			strconv.FormatFloat(rec.SHEMax, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads back the per-step torque records of a stored run.
func (s *Store) LoadHistory(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "torque.csv"))
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

	history := make([]StepRecord, 0, len(records))
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) < 4 {
			continue
		}
		step, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		sttMax, err1 := strconv.ParseFloat(row[1], 64)
		sttMean, err2 := strconv.ParseFloat(row[2], 64)
		sheMax, err3 := strconv.ParseFloat(row[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		history = append(history, StepRecord{Step: step, STTMax: sttMax, STTMean: sttMean, SHEMax: sheMax})
	}

	return history, nil
}
