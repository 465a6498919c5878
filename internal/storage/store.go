package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chagge/hysnet/internal/hysteresis"
)

// Store persists simulation runs as one directory per run: metadata.json
// plus dynamic.csv with the recorded trajectory.
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
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Size        int       `json:"size"`
	OwnWeight   float64   `json:"own_weight"`
	NeighWeight float64   `json:"neigh_weight"`
	Connection  string    `json:"connection"`
	Method      string    `json:"method"`
	Steps       int       `json:"steps"`
	Time        float64   `json:"time"`
	Tolerance   float64   `json:"tolerance"`
	Ensembles   [][]int   `json:"ensembles,omitempty"`
}

func (s *Store) Save(meta RunMetadata, dyn *hysteresis.Dynamic) (string, error) {
	runID := fmt.Sprintf("%s_%dosc_%d", meta.Connection, meta.Size, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "dynamic.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if dyn == nil || dyn.Len() == 0 {
		return runID, nil
	}

	size := len(dyn.States[0])
	header := []string{"time"}
	for i := 0; i < size; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < size; i++ {
		header = append(header, fmt.Sprintf("out%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < dyn.Len(); i++ {
		row := []string{strconv.FormatFloat(dyn.Times[i], 'f', 6, 64)}
		for _, val := range dyn.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		for _, val := range dyn.Outputs[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 0, 64))
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadDynamic reads a recorded trajectory back. Rows hold time, then the
// state columns, then the output columns.
func (s *Store) LoadDynamic(runID string) (*hysteresis.Dynamic, error) {
	csvPath := filepath.Join(s.baseDir, runID, "dynamic.csv")
	file, err := os.Open(csvPath)
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

	dyn := &hysteresis.Dynamic{}
	if len(records) < 2 {
		return dyn, nil
	}

	size := (len(records[0]) - 1) / 2

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 1+2*size {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		states := make([]float64, size)
		outputs := make([]float64, size)
		ok := true
		for j := 0; j < size; j++ {
			if states[j], err = strconv.ParseFloat(record[1+j], 64); err != nil {
				ok = false
				break
			}
			if outputs[j], err = strconv.ParseFloat(record[1+size+j], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		dyn.Times = append(dyn.Times, t)
		dyn.States = append(dyn.States, states)
		dyn.Outputs = append(dyn.Outputs, outputs)
	}

	return dyn, nil
}

// ExportJSONStdout writes the metadata and trajectory of a run to stdout
// as indented JSON.
func ExportJSONStdout(meta *RunMetadata, dyn *hysteresis.Dynamic) error {
	payload := struct {
		Meta    *RunMetadata        `json:"meta"`
		Dynamic *hysteresis.Dynamic `json:"dynamic"`
	}{meta, dyn}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
