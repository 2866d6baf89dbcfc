package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const notAvailable = "NA"

var ErrInvalidPercentage = errors.New("pass percentage must be a number with up to 2 decimals or NA")

type Topper struct {
	Rank       int    `json:"rank" yaml:"rank" validate:"gte=1"`
	Name       string `json:"name" yaml:"name" validate:"required"`
	Percentage string `json:"percentage" yaml:"percentage"`
}

type ClassResult struct {
	TotalStudents  int            `json:"total_students" yaml:"total_students" validate:"gte=0"`
	Passed         int            `json:"passed" yaml:"passed" validate:"gte=0,ltefield=TotalStudents"`
	Failed         int            `json:"failed" yaml:"failed"`
	PassPercentage PassPercentage `json:"pass_percentage" yaml:"pass_percentage"`
	Toppers        []Topper       `json:"toppers" yaml:"toppers" validate:"dive"`
}

type YearResult struct {
	Year    string      `json:"year" yaml:"year" validate:"required"`
	Class10 ClassResult `json:"class10" yaml:"class10"`
	Class12 ClassResult `json:"class12" yaml:"class12"`
}

// Recompute derives the failed counts from total and passed.
func (r *YearResult) Recompute() {
	r.Class10.Failed = r.Class10.TotalStudents - r.Class10.Passed
	r.Class12.Failed = r.Class12.TotalStudents - r.Class12.Passed
}

func SortResults(items []YearResult) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Year < items[j].Year })
}

// PassPercentage is either a percentage value or NA when no cohort sat the exam.
type PassPercentage struct {
	Value float64
	NA    bool
}

func Percent(value float64) PassPercentage { return PassPercentage{Value: value} }

func NotAvailable() PassPercentage { return PassPercentage{NA: true} }

// ParsePassPercentage accepts free-form admin input such as "96.15", "100" or "NA".
func ParsePassPercentage(raw string) (PassPercentage, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, notAvailable) {
		return NotAvailable(), nil
	}
	raw = strings.TrimSuffix(raw, "%")
	if raw == "" {
		return PassPercentage{}, ErrInvalidPercentage
	}
	if dot := strings.IndexByte(raw, '.'); dot >= 0 && len(raw)-dot-1 > 2 {
		return PassPercentage{}, ErrInvalidPercentage
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return PassPercentage{}, ErrInvalidPercentage
	}
	parsed := Percent(value)
	if err := parsed.Validate(); err != nil {
		return PassPercentage{}, err
	}
	return parsed, nil
}

// Validate reports whether p lies in 0..100 with at most two decimals.
// NA is always valid.
func (p PassPercentage) Validate() error {
	if p.NA {
		return nil
	}
	if math.IsNaN(p.Value) || p.Value < 0 || p.Value > 100 {
		return ErrInvalidPercentage
	}
	if hundredths := p.Value * 100; math.Abs(hundredths-math.Round(hundredths)) > 1e-6 {
		return ErrInvalidPercentage
	}
	return nil
}

func (p PassPercentage) String() string {
	if p.NA {
		return notAvailable
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// Display is the label shown to visitors.
func (p PassPercentage) Display() string {
	if p.NA {
		return "N/A"
	}
	return p.String() + "%"
}

func (p PassPercentage) MarshalJSON() ([]byte, error) {
	if p.NA {
		return json.Marshal(notAvailable)
	}
	return json.Marshal(p.Value)
}

func (p *PassPercentage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParsePassPercentage(raw)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	var value json.Number
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("pass percentage: %w", err)
	}
	parsed, err := ParsePassPercentage(value.String())
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p PassPercentage) MarshalYAML() (interface{}, error) {
	if p.NA {
		return notAvailable, nil
	}
	return p.Value, nil
}

func (p *PassPercentage) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return ErrInvalidPercentage
	}
	parsed, err := ParsePassPercentage(node.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
