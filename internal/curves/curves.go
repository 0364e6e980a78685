// Package curves reads sampled functions from CSV files.
//
// The first record holds the arguments, every following record one curve:
//
//	name,0,1,2,3
//	voxel-1,10,12,9,4
//	voxel-2,11,13,8,5
//
// Empty lines and lines starting with '#' are ignored.
package curves

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fda/stats/functional"
)

// ErrFormat indicates malformed CSV content.
var ErrFormat = errors.New("curves: malformed input")

// Set is a named collection of curves sharing one argument domain.
type Set struct {
	Names     []string
	Functions []*functional.Function[float64, float64]
}

// Len returns the number of curves.
func (s *Set) Len() int {
	return len(s.Functions)
}

// ReadFile reads a curve set from a CSV file.
func ReadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("curves: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a curve set from CSV data.
func Read(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrFormat)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	headerLine, _ := cr.FieldPos(0)

	if len(header) < 2 {
		return nil, fmt.Errorf("%w: line %d: header needs a name column and at least one argument", ErrFormat, headerLine)
	}

	args, err := parseFloats(header[1:], headerLine)
	if err != nil {
		return nil, err
	}

	if _, err := functional.NewFunction(args, make([]float64, len(args))); err != nil {
		return nil, fmt.Errorf("%w: line %d: header: %w", ErrFormat, headerLine, err)
	}

	set := &Set{}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}

		line, _ := cr.FieldPos(0)

		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrFormat, line, len(record), len(header))
		}

		values, err := parseFloats(record[1:], line)
		if err != nil {
			return nil, err
		}

		fn, err := functional.NewFunction(args, values)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			name = fmt.Sprintf("curve-%d", len(set.Names))
		}

		set.Names = append(set.Names, name)
		set.Functions = append(set.Functions, fn)
	}

	return set, nil
}

func parseFloats(fields []string, line int) ([]float64, error) {
	out := make([]float64, len(fields))

	for i, s := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %d: %q is not a number", ErrFormat, line, i+2, s)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: line %d column %d: %q is not finite", ErrFormat, line, i+2, s)
		}

		out[i] = v
	}

	return out, nil
}
