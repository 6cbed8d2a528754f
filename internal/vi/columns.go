// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vi

import (
	"fmt"
	"strconv"
)

// Column identifies one of the nine value columns in display order.
type Column int

const (
	ColumnVRQ Column = iota
	ColumnVP
	ColumnAgricola
	ColumnResidencial
	ColumnIndustrial
	ColumnVI
	ColumnResidentSoil
	ColumnIndustrialSoil
	ColumnTapWater

	columnCount
)

// Agency is the body that publishes a column's values.
type Agency int

const (
	AgencyCETESB Agency = iota
	AgencyUSEPA
)

// Medium is the environmental compartment a column applies to.
type Medium int

const (
	MediumSoil Medium = iota
	MediumGroundwater
)

// Label returns the unit-bearing label shown above each column.
func (m Medium) Label() string {
	if m == MediumGroundwater {
		return "Água Subt. (ug/L)"
	}
	return "Solos (mg/Kg)"
}

type columnInfo struct {
	key    string
	label  string
	pretty string
	agency Agency
	medium Medium
}

var columnTable = [columnCount]columnInfo{
	ColumnVRQ:            {"VRQ", "VRQ", "Valor de Referência de Qualidade (VRQ)", AgencyCETESB, MediumSoil},
	ColumnVP:             {"VP", "VP", "Valor de Prevenção (VP)", AgencyCETESB, MediumSoil},
	ColumnAgricola:       {"agricola", "Agrícola", "Agrícola", AgencyCETESB, MediumSoil},
	ColumnResidencial:    {"residencial", "Residêncial", "Residêncial", AgencyCETESB, MediumSoil},
	ColumnIndustrial:     {"industrial", "Industrial", "Industrial", AgencyCETESB, MediumSoil},
	ColumnVI:             {"VI", "VI", "VI", AgencyCETESB, MediumGroundwater},
	ColumnResidentSoil:   {"residentSoil", "Resident Soil", "Resident Soil", AgencyUSEPA, MediumSoil},
	ColumnIndustrialSoil: {"industrialSoil", "Industrial Soil", "Industrial Soil", AgencyUSEPA, MediumSoil},
	ColumnTapWater:       {"tapWater", "Tap Water", "Tap Water", AgencyUSEPA, MediumGroundwater},
}

// Columns returns all value columns in display order.
func Columns() []Column {
	cols := make([]Column, 0, columnCount)
	for c := ColumnVRQ; c < columnCount; c++ {
		cols = append(cols, c)
	}
	return cols
}

// Valid reports whether c names one of the nine columns.
func (c Column) Valid() bool {
	return c >= ColumnVRQ && c < columnCount
}

// Key returns the JSON key of the column, e.g. "residentSoil".
func (c Column) Key() string {
	if !c.Valid() {
		return ""
	}
	return columnTable[c].key
}

// Label returns the short header label.
func (c Column) Label() string {
	if !c.Valid() {
		return ""
	}
	return columnTable[c].label
}

// PrettyName returns the human-readable name used in copy notifications.
func (c Column) PrettyName() string {
	if !c.Valid() {
		return ""
	}
	return columnTable[c].pretty
}

// Agency returns the publishing body for the column.
func (c Column) Agency() Agency {
	return columnTable[c].agency
}

// Medium returns the environmental compartment for the column.
func (c Column) Medium() Medium {
	return columnTable[c].medium
}

func (c Column) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnTable[c].key
}

// ParseColumn accepts a column key ("tapWater") or a 1-based position ("9").
func ParseColumn(s string) (Column, error) {
	for c := ColumnVRQ; c < columnCount; c++ {
		if columnTable[c].key == s {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= int(columnCount) {
		return Column(n - 1), nil
	}
	return 0, fmt.Errorf("unknown column %q", s)
}
