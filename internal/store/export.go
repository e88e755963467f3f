// Package store writes solver runs to disk for use outside numkit.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/numkit/internal/experiment"
)

var ErrFormat = errors.New("store: unsupported export format")

// Record is the exported form of one run.
type Record struct {
	Problem string             `json:"problem"`
	Stepper string             `json:"stepper"`
	H       float64            `json:"h"`
	Steps   int                `json:"steps"`
	X       []float64          `json:"x"`
	Y       [][]float64        `json:"y"`
	Metrics map[string]float64 `json:"metrics"`
	Error   string             `json:"error,omitempty"`
}

func NewRecord(problem string, res *experiment.Result) Record {
	rec := Record{
		Problem: problem,
		Stepper: res.Stepper,
		H:       res.H,
		Steps:   res.Steps(),
		X:       res.Trajectory.X,
		Y:       make([][]float64, len(res.Trajectory.Y)),
		Metrics: res.Metrics,
	}
	for i, y := range res.Trajectory.Y {
		rec.Y[i] = y
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	return rec
}

func WriteJSON(w io.Writer, rec Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// WriteCSV writes one row per sample: x, y1, ..., yn. Metrics are not
// included.
func WriteCSV(w io.Writer, rec Record) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(rec.Y) > 0 {
		dim = len(rec.Y[0])
	}
	header := []string{"x"}
	for i := 1; i <= dim; i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, dim+1)
	for i, x := range rec.X {
		row[0] = strconv.FormatFloat(x, 'g', -1, 64)
		for j, v := range rec.Y[i] {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes rec to path, choosing the format from the extension
// (.json, .csv or .svg).
func Save(path string, rec Record) error {
	var write func(io.Writer, Record) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		write = WriteJSON
	case ".csv":
		write = WriteCSV
	case ".svg":
		write = WriteSVG
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, rec); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
