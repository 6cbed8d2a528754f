// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vi

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// RECORD
// =============================================================================

// Record is the set of reference limits for a single CAS number.
type Record struct {
	VRQ            *float64 `json:"VRQ,omitempty"`
	VP             *float64 `json:"VP,omitempty"`
	Agricola       *float64 `json:"agricola,omitempty"`
	Residencial    *float64 `json:"residencial,omitempty"`
	Industrial     *float64 `json:"industrial,omitempty"`
	VI             *float64 `json:"VI,omitempty"`
	ResidentSoil   *float64 `json:"residentSoil,omitempty"`
	IndustrialSoil *float64 `json:"industrialSoil,omitempty"`
	TapWater       *float64 `json:"tapWater,omitempty"`
}

// Dictionary maps a CAS number to its reference limits.
type Dictionary map[string]Record

// Document is the full reference table as published by the data source.
type Document struct {
	LastUpdated string     `json:"lastUpdated"`
	VI          Dictionary `json:"vi"`
}

// Float returns a pointer to v. Handy for building records in code and tests.
func Float(v float64) *float64 {
	return &v
}

// field returns the pointer slot for a column.
func (r *Record) field(c Column) **float64 {
	switch c {
	case ColumnVRQ:
		return &r.VRQ
	case ColumnVP:
		return &r.VP
	case ColumnAgricola:
		return &r.Agricola
	case ColumnResidencial:
		return &r.Residencial
	case ColumnIndustrial:
		return &r.Industrial
	case ColumnVI:
		return &r.VI
	case ColumnResidentSoil:
		return &r.ResidentSoil
	case ColumnIndustrialSoil:
		return &r.IndustrialSoil
	case ColumnTapWater:
		return &r.TapWater
	}
	return nil
}

// Value returns the value stored for column c and whether it is present.
func (r Record) Value(c Column) (float64, bool) {
	p := r.field(c)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// Set stores v under column c. Unknown columns are ignored.
func (r *Record) Set(c Column, v float64) {
	if p := r.field(c); p != nil {
		*p = Float(v)
	}
}

// IsEmpty reports whether the record has no values at all. Unknown CAS
// numbers resolve to an empty record.
func (r Record) IsEmpty() bool {
	for _, c := range Columns() {
		if _, ok := r.Value(c); ok {
			return false
		}
	}
	return true
}

// Len returns the number of CAS numbers in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.VI)
}

// Lookup returns the record for cas. Missing entries yield the empty record.
func (d *Document) Lookup(cas string) (Record, bool) {
	if d == nil || d.VI == nil {
		return Record{}, false
	}
	rec, ok := d.VI[cas]
	return rec, ok
}

// Validate checks a decoded document for structural problems.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	if d.VI == nil {
		return fmt.Errorf("document has no vi table")
	}
	for cas := range d.VI {
		if cas == "" {
			return fmt.Errorf("document contains an empty CAS key")
		}
	}
	return nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// Placeholder is rendered where a value is absent.
const Placeholder = "-"

// SumSuffix is appended to groundwater values that are sums of isomers
// or metabolites.
const SumSuffix = " *"

// FormatValue renders v in its shortest decimal form using a comma as the
// decimal separator, e.g. 0.5 -> "0,5", 1200 -> "1200".
func FormatValue(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

// FormatOptional renders a value or the placeholder when absent.
func FormatOptional(v float64, ok bool) string {
	if !ok {
		return Placeholder
	}
	return FormatValue(v)
}

// Cell returns the table text for column c of the record belonging to cas.
// The VI column carries the sum marker when the value is present and cas is
// one of the summed substances.
func Cell(cas string, r Record, c Column) string {
	v, ok := r.Value(c)
	if !ok {
		return Placeholder
	}
	text := FormatValue(v)
	if c == ColumnVI && IsSumMarker(cas) {
		text += SumSuffix
	}
	return text
}
