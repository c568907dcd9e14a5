package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Equipment type discriminator values as stored in equipment_type.name.
const (
	TypeModule   = "module"
	TypeInverter = "inverter"
)

// EquipmentIdentity wraps the primary key of an equipment row. The wrapped
// value is always positive; two identities are equal iff their values are.
type EquipmentIdentity struct {
	id int64
}

// NewEquipmentIdentity rejects non-positive ids.
func NewEquipmentIdentity(id int64) (EquipmentIdentity, error) {
	if id <= 0 {
		return EquipmentIdentity{}, fmt.Errorf("equipment id must be positive, got %d", id)
	}
	return EquipmentIdentity{id: id}, nil
}

func (e EquipmentIdentity) Int64() int64 { return e.id }

func (e EquipmentIdentity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.id)
}

// Equipment is the closed set of catalog entities: Module or Inverter.
// Variants are produced only by DecodeEquipmentRow; nothing outside this
// package can add a third case.
type Equipment interface {
	Identity() EquipmentIdentity
	// Kind returns the discriminator value (TypeModule or TypeInverter).
	Kind() string

	isEquipment()
}

// Module is a PV panel specification.
type Module struct {
	ID                             EquipmentIdentity `json:"id"`
	Model                          string            `json:"model"`
	Manufacturer                   string            `json:"manufacturer"`
	Description                    *string           `json:"description,omitempty"`
	ModifiedDate                   time.Time         `json:"modified_date"`
	KwStc                          float64           `json:"panel_kw_stc"`
	KwPtc                          float64           `json:"panel_kw_ptc"`
	HeightMm                       float64           `json:"panel_height_mm"`
	WidthMm                        float64           `json:"panel_width_mm"`
	IsBipvRated                    *bool             `json:"panel_is_bipv_rated,omitempty"`
	PowerTempCoefficient           float64           `json:"power_temp_coefficient"`
	NormalOperatingCellTemperature float64           `json:"normal_operating_cell_temperature"`
}

func (m *Module) Identity() EquipmentIdentity { return m.ID }
func (m *Module) Kind() string                { return TypeModule }
func (*Module) isEquipment()                  {}

// Inverter is an inverter specification.
type Inverter struct {
	ID            EquipmentIdentity `json:"id"`
	Model         string            `json:"model"`
	Manufacturer  string            `json:"manufacturer"`
	Description   *string           `json:"description,omitempty"`
	ModifiedDate  time.Time         `json:"modified_date"`
	Rating        *float64          `json:"rating,omitempty"`
	Efficiency    float64           `json:"inverter_efficiency"`
	OutputVoltage *float64          `json:"inverter_output_voltage,omitempty"`
	IsThreePhase  *bool             `json:"inverter_is_three_phase,omitempty"`
}

func (i *Inverter) Identity() EquipmentIdentity { return i.ID }
func (i *Inverter) Kind() string                { return TypeInverter }
func (*Inverter) isEquipment()                  {}
