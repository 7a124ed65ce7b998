// Package plan applies scripted edits to a catalog session.
//
// A plan is a YAML document listing operations that run in order:
//
//	seq_number: 12
//	operations:
//	  - op: add-derived
//	    parent: "100"
//	    title: Finanzbuchhaltung (Abendkurs)
//	    start_date: 03.03.2025
//	    weeks: 6
//	  - op: set
//	    id: "100"
//	    flexible_start: true
//	  - op: end-date
//	    id: "100_300"
//	    weeks: 4
//	  - op: remove
//	    id: "200"
package plan

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"kursnet-xml-tool/internal/dates"
	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/session"
)

// Operation kinds.
const (
	OpAddDerived = "add-derived"
	OpRemove     = "remove"
	OpSet        = "set"
	OpEndDate    = "end-date"
)

type Plan struct {
	SeqNumber  int         `yaml:"seq_number,omitempty"`
	Operations []Operation `yaml:"operations"`
}

// Operation is one edit. Pointer fields are only applied when present.
type Operation struct {
	Op     string `yaml:"op"`
	ID     string `yaml:"id,omitempty"`
	Parent string `yaml:"parent,omitempty"`

	Title         *string `yaml:"title,omitempty"`
	Description   *string `yaml:"description,omitempty"`
	StartDate     *string `yaml:"start_date,omitempty"`
	EndDate       *string `yaml:"end_date,omitempty"`
	Remarks       *string `yaml:"remarks,omitempty"`
	FlexibleStart *bool   `yaml:"flexible_start,omitempty"`
	EducationType *string `yaml:"education_type,omitempty"`

	// Weeks projects END_DATE from the start date after the other fields
	// are applied.
	Weeks float64 `yaml:"weeks,omitempty"`
}

// Parse decodes and validates a plan. Unknown keys are rejected.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return &p, nil
		}
		return nil, fmt.Errorf("plan: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseFile reads a plan from disk.
func ParseFile(path string) (*Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return Parse(bytes.NewReader(b))
}

func (p *Plan) Validate() error {
	if p.SeqNumber < 0 {
		return fmt.Errorf("plan: seq_number must be positive, got %d", p.SeqNumber)
	}
	for i, op := range p.Operations {
		if err := op.validate(); err != nil {
			return fmt.Errorf("plan: operation %d (%s): %w", i+1, op.Op, err)
		}
	}
	return nil
}

func (op Operation) validate() error {
	if op.Weeks < 0 {
		return fmt.Errorf("weeks must not be negative")
	}
	switch op.Op {
	case OpAddDerived:
		if op.Parent == "" {
			return fmt.Errorf("parent is required")
		}
	case OpRemove, OpSet:
		if op.ID == "" {
			return fmt.Errorf("id is required")
		}
	case OpEndDate:
		if op.ID == "" {
			return fmt.Errorf("id is required")
		}
		if op.Weeks <= 0 {
			return fmt.Errorf("weeks is required")
		}
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
	return nil
}

// Result lists the ids touched by Apply.
type Result struct {
	Added   []string
	Updated []string
	Removed []string
}

// Apply runs the operations against s in order and stops at the first
// failure. Operations before the failing one stay applied.
func (p *Plan) Apply(s *session.Session) (Result, error) {
	var res Result
	for i, op := range p.Operations {
		if err := op.apply(s, &res); err != nil {
			return res, fmt.Errorf("plan: operation %d (%s): %w", i+1, op.Op, err)
		}
	}
	return res, nil
}

func (op Operation) apply(s *session.Session, res *Result) error {
	switch op.Op {
	case OpAddDerived:
		child, err := s.AddDerivedRecord(op.Parent)
		if err != nil {
			return err
		}
		id := child.ProductID()
		if err := s.Update(id, op.setFields); err != nil {
			return err
		}
		res.Added = append(res.Added, id)
		return nil

	case OpRemove:
		if err := s.RemoveRecord(op.ID); err != nil {
			return err
		}
		res.Removed = append(res.Removed, op.ID)
		return nil

	case OpSet, OpEndDate:
		if err := s.Update(op.ID, op.setFields); err != nil {
			return err
		}
		res.Updated = append(res.Updated, op.ID)
		return nil
	}
	return fmt.Errorf("unknown operation %q", op.Op)
}

func (op Operation) setFields(r *domain.CourseRecord) error {
	if op.Title != nil {
		r.SetTitle(*op.Title)
	}
	if op.Description != nil {
		r.SetLongDescription(*op.Description)
	}
	if op.StartDate != nil {
		r.SetStartDate(*op.StartDate)
	}
	if op.EndDate != nil {
		r.SetEndDate(*op.EndDate)
	}
	if op.Remarks != nil {
		r.SetDateRemarks(*op.Remarks)
	}
	if op.FlexibleStart != nil {
		r.SetFlexibleStart(*op.FlexibleStart)
	}
	if op.EducationType != nil {
		r.SetEducationType(*op.EducationType)
	}
	if op.Weeks > 0 {
		end, ok := dates.ProjectEndDate(r.StartDate(), op.Weeks)
		if !ok {
			return fmt.Errorf("cannot project end date from start date %q", r.StartDate())
		}
		r.SetEndDate(end)
	}
	return nil
}
