package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kmehta/boltgroup/internal/config"
	"github.com/kmehta/boltgroup/internal/icr"
)

// Store persists solve runs under a base directory, one directory per
// run holding metadata.json and trace.csv.
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
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Rows         int       `json:"rows"`
	Cols         int       `json:"cols"`
	RowSpacing   float64   `json:"row_spacing"`
	ColSpacing   float64   `json:"col_spacing"`
	Eccentricity float64   `json:"eccentricity"`
	Rotation     float64   `json:"rotation"`
	Coefficient  float64   `json:"coefficient"`
	Converged    bool      `json:"converged"`
	Iterations   int       `json:"iterations"`
}

// TracePoint is one solver pass: trial IC offset and residual imbalance.
type TracePoint struct {
	Iteration int
	XRo       float64
	YRo       float64
	Imbalance float64
}

func (s *Store) Save(cfg *config.Config, result icr.Result, trace []TracePoint) (string, error) {
	runID := fmt.Sprintf("%dx%d_%d", cfg.Pattern.Rows, cfg.Pattern.Cols, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		Rows:         cfg.Pattern.Rows,
		Cols:         cfg.Pattern.Cols,
		RowSpacing:   cfg.Pattern.RowSpacing,
		ColSpacing:   cfg.Pattern.ColSpacing,
		Eccentricity: cfg.Load.Eccentricity,
		Rotation:     cfg.Load.Rotation,
		Coefficient:  result.Coefficient,
		Converged:    result.Converged,
		Iterations:   result.Iterations,
	}

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

	traceFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer traceFile.Close()

	w := csv.NewWriter(traceFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "x_ro", "y_ro", "imbalance"}); err != nil {
		return "", err
	}
	for _, pt := range trace {
		row := []string{
			strconv.Itoa(pt.Iteration),
			strconv.FormatFloat(pt.XRo, 'g', -1, 64),
			strconv.FormatFloat(pt.YRo, 'g', -1, 64),
			strconv.FormatFloat(pt.Imbalance, 'g', -1, 64),
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

func (s *Store) LoadTrace(runID string) ([]TracePoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := make([]TracePoint, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]

		iter, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		xRo, err1 := strconv.ParseFloat(record[1], 64)
		yRo, err2 := strconv.ParseFloat(record[2], 64)
		imbalance, err3 := strconv.ParseFloat(record[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}

		trace = append(trace, TracePoint{Iteration: iter, XRo: xRo, YRo: yRo, Imbalance: imbalance})
	}

	return trace, nil
}
