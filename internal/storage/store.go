package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/tidwall/gjson"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var idGen = uuid.NewGen()

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Model      string             `json:"model"`
	Num        []float64          `json:"num"`
	Den        []float64          `json:"den"`
	Input      string             `json:"input"`
	Dt         float64            `json:"dt"`
	Samples    int                `json:"samples"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and the run's samples under a new run directory and
// returns the run id. A preset meta.ID is used as is and replaces an
// existing run with that id. Non-finite metrics are not stored.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if meta.ID == "" {
		id, err := idGen.NewV7()
		if err != nil {
			return "", err
		}
		name := meta.Name
		if name == "" {
			name = "run"
		}
		meta.ID = fmt.Sprintf("%s_%s", name, id.String()[24:])
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Samples = len(result.Times)
	meta.Metrics = finite(result.Metrics)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
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
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.readMetadata(runID)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// Lookup reads one metadata field by gjson path, e.g. "metrics.peak".
func (s *Store) Lookup(runID, path string) (gjson.Result, error) {
	data, err := s.readMetadata(runID)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("storage: run %s: malformed metadata", runID)
	}
	return gjson.GetBytes(data, path), nil
}

// LoadSamples rebuilds the run record from samples.csv and the stored
// metrics.
func (s *Store) LoadSamples(runID string) (*dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	res, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	res.Metrics = meta.Metrics
	return res, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.readMetadata(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

func (s *Store) readMetadata(runID string) ([]byte, error) {
	if runID == "" || filepath.Base(runID) != runID {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	return data, nil
}

// WriteCSV writes one row per sample: time, input, output, then the
// pre-step state x0..xn-1.
func WriteCSV(w io.Writer, result *dynamo.Result) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(result.States) > 0 {
		dim = len(result.States[0])
	}

	header := []string{"time", "input", "output"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := range result.Times {
		row[0] = formatFloat(result.Times[i])
		row[1] = formatFloat(at(result.Inputs, i))
		row[2] = formatFloat(at(result.Outputs, i))
		for j := 0; j < dim; j++ {
			v := 0.0
			if i < len(result.States) && j < len(result.States[i]) {
				v = result.States[i][j]
			}
			row[3+j] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (*dynamo.Result, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}
	header := records[0]
	if len(header) < 3 || header[0] != "time" || header[1] != "input" || header[2] != "output" {
		return nil, fmt.Errorf("unexpected header %v", header)
	}
	dim := len(header) - 3

	n := len(records) - 1
	res := &dynamo.Result{
		Times:   make([]float64, n),
		Inputs:  make([]float64, n),
		Outputs: make([]float64, n),
		States:  make([]dynamo.State, n),
	}
	for i, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, header[j], err)
			}
			vals[j] = v
		}
		res.Times[i], res.Inputs[i], res.Outputs[i] = vals[0], vals[1], vals[2]
		res.States[i] = dynamo.State(vals[3 : 3+dim])
	}
	return res, nil
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
