package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/solarlabs-dev/solar-equipment-catalog/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

const equipmentByIDQuery = `
SELECT e.id,
       et.name AS equipment_type_name,
       e.model,
       m.name AS manufacturer_name,
       e.description,
       e.modified_date,
       e.panel_kw_stc,
       e.panel_kw_ptc,
       e.panel_height_mm,
       e.panel_width_mm,
       e.panel_is_bipv_rated,
       e.power_temp_coefficient,
       e.normal_operating_cell_temperature,
       e.rating,
       e.inverter_efficiency,
       e.inverter_output_voltage,
       e.inverter_is_three_phase
FROM equipment e
JOIN equipment_type et ON et.id = e.equipment_type_id
JOIN manufacturer m ON m.id = e.manufacturer_id
WHERE e.id = $1`

// GetEquipment looks up a single equipment row by primary key and decodes it
// into its variant. A missing row returns (nil, nil); a row that decodes to
// neither variant returns a *domain.UnrecognizedShapeError. Query errors
// propagate unmodified. The receiver holds no state between calls.
func (r *Repos) GetEquipment(ctx context.Context, id domain.EquipmentIdentity) (domain.Equipment, error) {
	var raw domain.RawEquipmentRow
	err := r.db.GetContext(ctx, &raw, equipmentByIDQuery, id.Int64())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return domain.DecodeEquipmentRow(raw)
}
