package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	// MaxWarehouses keeps departure keys (originID*10^4) below the time digits.
	MaxWarehouses = 1000
	// MaxPackageID keeps arrival keys (packageID*10) below the time digits.
	MaxPackageID = 999_999
)

// PackageSpec is one package record of a scenario file.
type PackageSpec struct {
	ID          int   `yaml:"id"`
	PostTime    int64 `yaml:"post_time"`
	Origin      int   `yaml:"origin"`
	Destination int   `yaml:"destination"`
}

// Scenario is everything a simulation run is built from.
type Scenario struct {
	Policy    TransportPolicy
	Adjacency [][]bool
	Packages  []PackageSpec
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w: %w", ErrInvalidInput, err)
	}
	defer f.Close()
	return ParseScenario(f)
}

// ParseScenario reads the whitespace-delimited scenario format:
//
//	capacity latency interval removalCost
//	N
//	N×N matrix of 0/1
//	M
//	M × "postTime <label> id <label> origin <label> destination"
//
// The three labels in each package record are skipped.
func ParseScenario(r io.Reader) (*Scenario, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tr := &tokenReader{sc: sc}

	var s Scenario
	s.Policy.Capacity = tr.readInt("capacity")
	s.Policy.Latency = tr.readInt64("latency")
	s.Policy.Interval = tr.readInt64("interval")
	s.Policy.RemovalCost = tr.readInt64("removal cost")

	n := tr.readInt("warehouse count")
	if tr.err == nil && (n < 0 || n > MaxWarehouses) {
		return nil, fmt.Errorf("warehouse count %d outside [0, %d]: %w", n, MaxWarehouses, ErrInvalidInput)
	}
	s.Adjacency = make([][]bool, max(n, 0))
	for i := 0; i < n && tr.err == nil; i++ {
		s.Adjacency[i] = make([]bool, n)
		for j := 0; j < n && tr.err == nil; j++ {
			field := fmt.Sprintf("adjacency[%d][%d]", i, j)
			switch v := tr.readInt(field); v {
			case 0:
			case 1:
				s.Adjacency[i][j] = true
			default:
				if tr.err == nil {
					tr.err = fmt.Errorf("%s: want 0 or 1, got %d: %w", field, v, ErrInvalidInput)
				}
			}
		}
	}

	m := tr.readInt("package count")
	if tr.err == nil && m < 0 {
		return nil, fmt.Errorf("package count %d is negative: %w", m, ErrInvalidInput)
	}
	for i := 0; i < m && tr.err == nil; i++ {
		var p PackageSpec
		p.PostTime = tr.readInt64(fmt.Sprintf("package %d post time", i))
		tr.skip(fmt.Sprintf("package %d id label", i))
		p.ID = tr.readInt(fmt.Sprintf("package %d id", i))
		tr.skip(fmt.Sprintf("package %d origin label", i))
		p.Origin = tr.readInt(fmt.Sprintf("package %d origin", i))
		tr.skip(fmt.Sprintf("package %d destination label", i))
		p.Destination = tr.readInt(fmt.Sprintf("package %d destination", i))
		s.Packages = append(s.Packages, p)
	}
	if tr.err != nil {
		return nil, tr.err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks cross-field consistency of a scenario.
func (s *Scenario) Validate() error {
	if err := s.Policy.Validate(); err != nil {
		return err
	}
	n := len(s.Adjacency)
	if n > MaxWarehouses {
		return fmt.Errorf("warehouse count %d exceeds %d: %w", n, MaxWarehouses, ErrInvalidInput)
	}
	if _, err := NewNetwork(s.Adjacency); err != nil {
		return err
	}
	seen := make(map[int]bool, len(s.Packages))
	for _, p := range s.Packages {
		if p.ID < 0 || p.ID > MaxPackageID {
			return fmt.Errorf("package id %d outside [0, %d]: %w", p.ID, MaxPackageID, ErrInvalidInput)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate package id %d: %w", p.ID, ErrInvalidInput)
		}
		seen[p.ID] = true
		if p.PostTime < 0 || p.PostTime > MaxTime {
			return fmt.Errorf("package %d: post time %d outside [0, %d]: %w", p.ID, p.PostTime, MaxTime, ErrInvalidInput)
		}
		if p.Origin < 0 || p.Origin >= n {
			return fmt.Errorf("package %d origin %d: %w", p.ID, p.Origin, ErrInvalidWarehouse)
		}
		if p.Destination < 0 || p.Destination >= n {
			return fmt.Errorf("package %d destination %d: %w", p.ID, p.Destination, ErrInvalidWarehouse)
		}
	}
	return nil
}

// tokenReader pulls whitespace-separated fields and keeps the first error.
type tokenReader struct {
	sc  *bufio.Scanner
	err error
}

func (tr *tokenReader) next(field string) (string, bool) {
	if tr.err != nil {
		return "", false
	}
	if !tr.sc.Scan() {
		if err := tr.sc.Err(); err != nil {
			tr.err = fmt.Errorf("reading %s: %w: %w", field, ErrInvalidInput, err)
		} else {
			tr.err = fmt.Errorf("reading %s: unexpected end of input: %w", field, ErrInvalidInput)
		}
		return "", false
	}
	return tr.sc.Text(), true
}

func (tr *tokenReader) skip(field string) {
	tr.next(field)
}

func (tr *tokenReader) readInt64(field string) int64 {
	tok, ok := tr.next(field)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		tr.err = fmt.Errorf("reading %s: %q is not an integer: %w", field, tok, ErrInvalidInput)
		return 0
	}
	return v
}

func (tr *tokenReader) readInt(field string) int {
	return int(tr.readInt64(field))
}
