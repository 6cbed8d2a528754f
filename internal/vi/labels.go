// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vi

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CETESBHeader is the provenance label of the six CETESB columns.
const CETESBHeader = "CETESB, 2021"

// sumMarkers lists the CAS numbers whose groundwater VI is the sum of
// isomers or metabolites.
var sumMarkers = map[string]struct{}{
	"87-61-6":  {},
	"120-82-1": {},
	"108-70-3": {},
	"156-59-2": {},
	"156-60-5": {},
	"309-00-2": {},
	"60-57-1":  {},
	"72-54-8":  {},
	"72-55-9":  {},
	"50-29-3":  {},
}

// IsSumMarker reports whether cas is one of the summed substances.
func IsSumMarker(cas string) bool {
	_, ok := sumMarkers[cas]
	return ok
}

// SumMarkers returns the summed CAS numbers in no particular order.
func SumMarkers() []string {
	out := make([]string, 0, len(sumMarkers))
	for cas := range sumMarkers {
		out = append(out, cas)
	}
	return out
}

var ptUpper = cases.Upper(language.BrazilianPortuguese)

// USEPAStamp extracts "<MONTH> <YEAR>" from a lastUpdated string such as
// "Atualizado em maio de 2024". Tokens are split on single spaces: the
// third token is the month (upper-cased) and the fifth is the year.
// It returns "-" when the string is too short.
func USEPAStamp(lastUpdated string) string {
	if lastUpdated == "" {
		return Placeholder
	}
	tokens := strings.Split(lastUpdated, " ")
	if len(tokens) < 5 {
		return Placeholder
	}
	return ptUpper.String(tokens[2]) + " " + tokens[4]
}

// USEPAHeader is the provenance label of the three USEPA columns.
func USEPAHeader(lastUpdated string) string {
	return "USEPA, " + USEPAStamp(lastUpdated)
}

// Footer notes shown under the table.
const (
	NoteUSEPARefresh = "* Dados que são referente a tabela USEPA são atualizados automaticamente " +
		"todo mês de Maio e Novembro, conforme site da EPA Gov, baseados na tabela " +
		"'Summary Table (TR=1E-06 THQ=1.0)'"
	NoteUSEPASource = "https://www.epa.gov/risk/regional-screening-levels-rsls-generic-tables"
	NoteSumLegend   = "* Valor de Água Sub. (VI) com * ao lado: Somatória dos isômeros ou metabólitos"
)

// NoteLastUpdated returns the "last updated" footer line.
func NoteLastUpdated(lastUpdated string) string {
	if lastUpdated == "" {
		return "* Última atualização em " + Placeholder
	}
	return "* Última atualização em " + lastUpdated
}
