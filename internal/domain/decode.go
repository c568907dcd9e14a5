package domain

import (
	"database/sql"
	"fmt"
	"time"
)

// RawEquipmentRow is the flat tuple produced by joining equipment with
// equipment_type and manufacturer. Type-specific columns are null for the
// non-applicable variant.
type RawEquipmentRow struct {
	ID                             int64           `db:"id"`
	EquipmentTypeName              string          `db:"equipment_type_name"`
	Model                          string          `db:"model"`
	ManufacturerName               string          `db:"manufacturer_name"`
	Description                    sql.NullString  `db:"description"`
	ModifiedDate                   time.Time       `db:"modified_date"`
	PanelKwStc                     sql.NullFloat64 `db:"panel_kw_stc"`
	PanelKwPtc                     sql.NullFloat64 `db:"panel_kw_ptc"`
	PanelHeightMm                  sql.NullFloat64 `db:"panel_height_mm"`
	PanelWidthMm                   sql.NullFloat64 `db:"panel_width_mm"`
	PanelIsBipvRated               sql.NullBool    `db:"panel_is_bipv_rated"`
	PowerTempCoefficient           sql.NullFloat64 `db:"power_temp_coefficient"`
	NormalOperatingCellTemperature sql.NullFloat64 `db:"normal_operating_cell_temperature"`
	Rating                         sql.NullFloat64 `db:"rating"`
	InverterEfficiency             sql.NullFloat64 `db:"inverter_efficiency"`
	InverterOutputVoltage          sql.NullFloat64 `db:"inverter_output_voltage"`
	InverterIsThreePhase           sql.NullBool    `db:"inverter_is_three_phase"`
}

// UnrecognizedShapeError reports a row whose null/non-null pattern matches
// neither known variant. It carries the full raw row for diagnostics.
type UnrecognizedShapeError struct {
	Row RawEquipmentRow
}

func (e *UnrecognizedShapeError) Error() string {
	return fmt.Sprintf("equipment row %d (type %q) matches no known shape: %+v",
		e.Row.ID, e.Row.EquipmentTypeName, e.Row)
}

// DecodeEquipmentRow maps a raw joined row to exactly one Equipment variant.
// First match wins:
//
//  1. type "module" with all six panel columns present and the inverter
//     rating/efficiency columns null decodes to a Module;
//  2. type "inverter" with the four physical panel columns null and
//     inverter_efficiency present decodes to an Inverter.
//
// Anything else is an UnrecognizedShapeError. The decoder never guesses a
// variant from a partial match.
//
// Inverter optionals (rating, output voltage, three-phase flag) sometimes
// hold markers like 0 or false where the column should be null. The decoder
// passes them through unchanged; it cannot tell a real zero from a stand-in,
// and which it should be is still an open product question.
func DecodeEquipmentRow(raw RawEquipmentRow) (Equipment, error) {
	ident, err := NewEquipmentIdentity(raw.ID)
	if err != nil {
		return nil, &UnrecognizedShapeError{Row: raw}
	}

	switch {
	case raw.EquipmentTypeName == TypeModule && hasModuleFields(raw) &&
		!raw.Rating.Valid && !raw.InverterEfficiency.Valid:
		return &Module{
			ID:                             ident,
			Model:                          raw.Model,
			Manufacturer:                   raw.ManufacturerName,
			Description:                    stringPtr(raw.Description),
			ModifiedDate:                   raw.ModifiedDate,
			KwStc:                          raw.PanelKwStc.Float64,
			KwPtc:                          raw.PanelKwPtc.Float64,
			HeightMm:                       raw.PanelHeightMm.Float64,
			WidthMm:                        raw.PanelWidthMm.Float64,
			IsBipvRated:                    boolPtr(raw.PanelIsBipvRated),
			PowerTempCoefficient:           raw.PowerTempCoefficient.Float64,
			NormalOperatingCellTemperature: raw.NormalOperatingCellTemperature.Float64,
		}, nil

	case raw.EquipmentTypeName == TypeInverter && !hasPanelDimensions(raw) &&
		raw.InverterEfficiency.Valid:
		return &Inverter{
			ID:            ident,
			Model:         raw.Model,
			Manufacturer:  raw.ManufacturerName,
			Description:   stringPtr(raw.Description),
			ModifiedDate:  raw.ModifiedDate,
			Rating:        floatPtr(raw.Rating),
			Efficiency:    raw.InverterEfficiency.Float64,
			OutputVoltage: floatPtr(raw.InverterOutputVoltage),
			IsThreePhase:  boolPtr(raw.InverterIsThreePhase),
		}, nil
	}

	return nil, &UnrecognizedShapeError{Row: raw}
}

// hasModuleFields reports whether all six module-required columns are present.
func hasModuleFields(raw RawEquipmentRow) bool {
	return raw.PanelKwStc.Valid && raw.PanelKwPtc.Valid &&
		raw.PanelHeightMm.Valid && raw.PanelWidthMm.Valid &&
		raw.PowerTempCoefficient.Valid && raw.NormalOperatingCellTemperature.Valid
}

// hasPanelDimensions reports whether any of the four physical panel columns
// is present. The two thermal coefficients are deliberately not checked here:
// inverter rows have been seen with marker values stuffed into them.
func hasPanelDimensions(raw RawEquipmentRow) bool {
	return raw.PanelKwStc.Valid || raw.PanelKwPtc.Valid ||
		raw.PanelHeightMm.Valid || raw.PanelWidthMm.Valid
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
