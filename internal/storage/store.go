package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/isingsim/internal/ising"
)

const (
	metadataFile    = "metadata.json"
	observablesFile = "observables.csv"
	configsFile     = "configs.json"
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
	Algorithm  string             `json:"algorithm"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Size       int                `json:"size"`
	K          float64            `json:"k"`
	J          float64            `json:"J"`
	T          float64            `json:"T"`
	Tc         float64            `json:"Tc"`
	Iterations int                `json:"iterations"`
	Burnin     int                `json:"burnin"`
	SaveConfig bool               `json:"save_config"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Observables is one row of observables.csv.
type Observables struct {
	Iteration int
	H, M      float64
	K, J, T   float64
}

// Save writes a run directory and returns its ID. meta.ID and meta.Timestamp
// are assigned here.
func (s *Store) Save(meta RunMetadata, history []ising.Snapshot) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Algorithm, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeObservables(filepath.Join(runDir, observablesFile), history); err != nil {
		return "", err
	}

	if meta.SaveConfig {
		configs := make([]*ising.Lattice, 0, len(history))
		for _, snap := range history {
			configs = append(configs, snap.Config)
		}
		if err := writeJSON(filepath.Join(runDir, configsFile), configs); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeObservables(path string, history []ising.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"iteration", "H", "M", "k", "J", "T"}); err != nil {
		return err
	}

	for i, snap := range history {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(snap.H, 'g', -1, 64),
			strconv.FormatFloat(snap.M, 'g', -1, 64),
			strconv.FormatFloat(snap.K, 'g', -1, 64),
			strconv.FormatFloat(snap.J, 'g', -1, 64),
			strconv.FormatFloat(snap.T, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadObservables(runID string) ([]Observables, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, observablesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Observables{}, nil
	}

	out := make([]Observables, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 6 {
			return nil, fmt.Errorf("run %s: malformed observables row %v", runID, record)
		}

		it, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}

		vals := make([]float64, 5)
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(record[i+1], 64); err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
		}

		out = append(out, Observables{Iteration: it, H: vals[0], M: vals[1], K: vals[2], J: vals[3], T: vals[4]})
	}

	return out, nil
}

// LoadConfigs returns the stored lattice per snapshot, or an error when the
// run was saved without configurations.
func (s *Store) LoadConfigs(runID string) ([]*ising.Lattice, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, configsFile))
	if err != nil {
		return nil, err
	}

	var configs []*ising.Lattice
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
