// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vi holds the reference data model for intervention values (VI).
//
// A Document is the payload served at /vi/cas: a free-form lastUpdated
// string plus a Dictionary keyed by CAS number. Each Record carries up to
// nine optional numeric limits:
//
//	CETESB, 2021 (soils, mg/kg):   VRQ, VP, agricola, residencial, industrial
//	CETESB, 2021 (groundwater):    VI
//	USEPA RSL (soils, mg/kg):      residentSoil, industrialSoil
//	USEPA RSL (groundwater, ug/L): tapWater
//
// A nil field means the substance has no regulated value for that column.
// Display helpers in this package render values in pt-BR notation (decimal
// comma) and build the provenance labels shown in table headers.
package vi
