// Package registry declares the shape of every inventory collection: its
// table, searchable columns, foreign keys, sequencing scope and default
// ordering. The CRUD engine and the HTTP layer are both driven off these
// descriptors, so adding a collection means adding one entry here plus its
// model.
package registry

import (
	"errors"

	"example.com/acgl/services/inventory/internal/models"
)

// ErrUnknownEntity is returned by Describe for an entity tag that is not
// part of the fixed collection set.
var ErrUnknownEntity = errors.New("unknown entity type")

// Scope selects how sr_no values are allocated for a collection.
type Scope int

const (
	// ScopeGlobal numbers records across the whole collection.
	ScopeGlobal Scope = iota
	// ScopePlant restarts numbering at 1 for every plant.
	ScopePlant
)

// Descriptor is the static schema entry for one inventory collection.
type Descriptor struct {
	// Key is the route tag, e.g. "assets" or "servers/sap".
	Key   string
	Table string
	// Label names the entity in success messages.
	Label string
	// ResponseKey is the JSON key carrying list results, IDKey the key
	// carrying the new record id on create.
	ResponseKey string
	IDKey       string
	// SearchFields are the 2-3 identifying text columns free-text search
	// matches against (case-insensitive substring, OR semantics).
	SearchFields  []string
	HasPlant      bool
	HasDepartment bool
	Scope         Scope
	// OrderAscending is the documented default listing order: global
	// collections list newest first (sr_no DESC), plant rosters read
	// top-down (sr_no ASC).
	OrderAscending bool
	// UpdateColumns are the columns a PUT may replace. sr_no, created_by
	// and is_active are deliberately absent.
	UpdateColumns []string
	// New returns a fresh record of the collection's concrete type.
	New func() models.InventoryRecord
}

var descriptors = []Descriptor{
	{
		Key:           "assets",
		Table:         "assets",
		Label:         "Asset",
		ResponseKey:   "assets",
		IDKey:         "asset_id",
		SearchFields:  []string{"asset_name", "asset_number", "hostname"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"asset_number", "asset_name", "department_id", "plant_id", "hostname", "username", "serial_number", "device_type"},
		New:           func() models.InventoryRecord { return &models.Asset{} },
	},
	{
		Key:           "software-licenses",
		Table:         "software_licenses",
		Label:         "Software license",
		ResponseKey:   "licenses",
		IDKey:         "license_id",
		SearchFields:  []string{"software_name", "software_key", "hostname"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"software_key", "software_name", "department_id", "plant_id", "hostname", "username", "ms_office", "autocad", "creo", "device_type"},
		New:           func() models.InventoryRecord { return &models.SoftwareLicense{} },
	},
	{
		Key:           "servers/sap",
		Table:         "sap_servers",
		Label:         "SAP server",
		ResponseKey:   "servers",
		IDKey:         "server_id",
		SearchFields:  []string{"server_brand", "serial_number", "model_number"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"server_brand", "serial_number", "model_number", "hard_disk", "total_ram", "total_cpu", "plant_id", "department_id"},
		New:           func() models.InventoryRecord { return &models.SapServer{} },
	},
	{
		Key:           "servers/non-sap",
		Table:         "non_sap_servers",
		Label:         "Non-SAP server",
		ResponseKey:   "servers",
		IDKey:         "server_id",
		SearchFields:  []string{"server_brand", "serial_number", "model_number"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"server_brand", "serial_number", "model_number", "hard_disk", "total_ram", "total_cpu", "vm", "plant_id", "department_id"},
		New:           func() models.InventoryRecord { return &models.NonSapServer{} },
	},
	{
		Key:           "switches",
		Table:         "network_switches",
		Label:         "Switch",
		ResponseKey:   "switches",
		IDKey:         "switch_id",
		SearchFields:  []string{"switch_name", "switch_id", "hostname"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"switch_id", "switch_name", "department_id", "plant_id", "hostname", "username", "device_type"},
		New:           func() models.InventoryRecord { return &models.NetworkSwitch{} },
	},
	{
		Key:           "cctv",
		Table:         "cctv_cameras",
		Label:         "CCTV camera",
		ResponseKey:   "cameras",
		IDKey:         "camera_id",
		SearchFields:  []string{"camera_name", "camera_id", "hostname"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"camera_id", "camera_name", "department_id", "plant_id", "hostname", "username", "device_type"},
		New:           func() models.InventoryRecord { return &models.CctvCamera{} },
	},
	{
		Key:           "printers",
		Table:         "printers",
		Label:         "Printer",
		ResponseKey:   "printers",
		IDKey:         "printer_id",
		SearchFields:  []string{"printer_name", "printer_id", "hostname"},
		HasPlant:      true,
		HasDepartment: true,
		UpdateColumns: []string{"printer_id", "printer_name", "department_id", "plant_id", "hostname", "username", "device_type"},
		New:           func() models.InventoryRecord { return &models.Printer{} },
	},
	{
		Key:            "plant-assets",
		Table:          "plant_assets",
		Label:          "Plant asset",
		ResponseKey:    "assets",
		IDKey:          "asset_id",
		SearchFields:   []string{"asset_name", "employee_name", "hostname"},
		HasPlant:       true,
		HasDepartment:  true,
		Scope:          ScopePlant,
		OrderAscending: true,
		UpdateColumns:  []string{"asset_name", "employee_name", "department_id", "username", "serial_number", "device_type", "hostname", "last_name"},
		New:            func() models.InventoryRecord { return &models.PlantAsset{} },
	},
}

var byKey = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Key] = d
	}
	return m
}()

// Describe resolves an entity tag to its descriptor.
func Describe(key string) (Descriptor, error) {
	d, ok := byKey[key]
	if !ok {
		return Descriptor{}, ErrUnknownEntity
	}
	return d, nil
}

// All returns every descriptor in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
