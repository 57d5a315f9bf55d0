// Package nomenclature classifies specification rows and computes pipe masses.
package nomenclature

import (
	"github.com/shopspring/decimal"
)

// Row is one pipe or fitting line extracted from a specification PDF.
type Row struct {
	// File is the source PDF name without the .pdf extension.
	File         string
	Nomenclature string
	Quantity     decimal.NullDecimal
	// Mass is the weight of one metre of pipe in kg; only set for pipes.
	Mass         decimal.NullDecimal
	Manufacturer string
}

// CSVRow is the flat form of Row written by the CSV companion export.
type CSVRow struct {
	File         string `csv:"Файл"`
	Nomenclature string `csv:"Номенклатура"`
	Quantity     string `csv:"Количество"`
	Mass         string `csv:"Масса"`
	Manufacturer string `csv:"Завод изготовитель"`
}

// ToCSV converts r, leaving absent quantity and mass empty.
func (r Row) ToCSV() CSVRow {
	return CSVRow{
		File:         r.File,
		Nomenclature: r.Nomenclature,
		Quantity:     nullString(r.Quantity),
		Mass:         nullString(r.Mass),
		Manufacturer: r.Manufacturer,
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
