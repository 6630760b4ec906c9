package models

import (
	"time"
)

// Base holds the columns shared by every inventory table. Records are never
// removed physically; IsActive is flipped off instead so sequence numbers
// stay stable for anything still holding them.
type Base struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SrNo      int64     `json:"sr_no" gorm:"Column:sr_no"`
	IsActive  bool      `json:"is_active" gorm:"Column:is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `json:"created_by" gorm:"Column:created_by"`
}

// InventoryRecord is implemented by every inventory entity so the generic
// CRUD engine can stamp the base columns without knowing the concrete type.
type InventoryRecord interface {
	RecordID() uint
	Sequence() int64
	SetSequence(n int64)
	SetCreatedBy(userID *uint)
	Activate()
	// SequenceScope returns the plant id for entities numbered per plant,
	// nil for entities numbered across the whole collection.
	SequenceScope() *uint
}

func (b *Base) RecordID() uint            { return b.ID }
func (b *Base) Sequence() int64           { return b.SrNo }
func (b *Base) SetSequence(n int64)       { b.SrNo = n }
func (b *Base) SetCreatedBy(userID *uint) { b.CreatedBy = userID }
func (b *Base) Activate()                 { b.IsActive = true }
func (b *Base) SequenceScope() *uint      { return nil }

// Plant is a reference entity; deactivated, never deleted.
type Plant struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"Column:name"`
	IsActive bool   `json:"is_active" gorm:"Column:is_active"`
}

func (Plant) TableName() string { return "plants" }

// Department is a reference entity; deactivated, never deleted.
type Department struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"Column:name"`
	IsActive bool   `json:"is_active" gorm:"Column:is_active"`
}

func (Department) TableName() string { return "departments" }

// Asset is a general hardware asset.
type Asset struct {
	Base
	AssetNumber  string `json:"asset_number" gorm:"Column:asset_number" binding:"required"`
	AssetName    string `json:"asset_name" gorm:"Column:asset_name" binding:"required"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	Username     string `json:"username" gorm:"Column:username"`
	SerialNumber string `json:"serial_number" gorm:"Column:serial_number"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
}

func (Asset) TableName() string { return "assets" }

// SoftwareLicense tracks an installed software key and its bundled products.
type SoftwareLicense struct {
	Base
	SoftwareKey  string `json:"software_key" gorm:"Column:software_key" binding:"required"`
	SoftwareName string `json:"software_name" gorm:"Column:software_name" binding:"required"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	Username     string `json:"username" gorm:"Column:username"`
	MsOffice     bool   `json:"ms_office" gorm:"Column:ms_office"`
	Autocad      bool   `json:"autocad" gorm:"Column:autocad"`
	Creo         bool   `json:"creo" gorm:"Column:creo"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
}

func (SoftwareLicense) TableName() string { return "software_licenses" }

// SapServer is a server running SAP workloads.
type SapServer struct {
	Base
	ServerBrand  string `json:"server_brand" gorm:"Column:server_brand" binding:"required"`
	SerialNumber string `json:"serial_number" gorm:"Column:serial_number"`
	ModelNumber  string `json:"model_number" gorm:"Column:model_number"`
	HardDisk     string `json:"hard_disk" gorm:"Column:hard_disk"`
	TotalRAM     string `json:"total_ram" gorm:"Column:total_ram"`
	TotalCPU     string `json:"total_cpu" gorm:"Column:total_cpu"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
}

func (SapServer) TableName() string { return "sap_servers" }

// NonSapServer is any other server, physical or virtual.
type NonSapServer struct {
	Base
	ServerBrand  string `json:"server_brand" gorm:"Column:server_brand" binding:"required"`
	SerialNumber string `json:"serial_number" gorm:"Column:serial_number"`
	ModelNumber  string `json:"model_number" gorm:"Column:model_number"`
	HardDisk     string `json:"hard_disk" gorm:"Column:hard_disk"`
	TotalRAM     string `json:"total_ram" gorm:"Column:total_ram"`
	TotalCPU     string `json:"total_cpu" gorm:"Column:total_cpu"`
	VM           string `json:"vm" gorm:"Column:vm"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
}

func (NonSapServer) TableName() string { return "non_sap_servers" }

// NetworkSwitch is a managed network switch.
type NetworkSwitch struct {
	Base
	SwitchID     string `json:"switch_id" gorm:"Column:switch_id" binding:"required"`
	SwitchName   string `json:"switch_name" gorm:"Column:switch_name" binding:"required"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	Username     string `json:"username" gorm:"Column:username"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
}

func (NetworkSwitch) TableName() string { return "network_switches" }

// CctvCamera is a surveillance camera.
type CctvCamera struct {
	Base
	CameraID     string `json:"camera_id" gorm:"Column:camera_id" binding:"required"`
	CameraName   string `json:"camera_name" gorm:"Column:camera_name" binding:"required"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	Username     string `json:"username" gorm:"Column:username"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
}

func (CctvCamera) TableName() string { return "cctv_cameras" }

// Printer is a network or desk printer.
type Printer struct {
	Base
	PrinterID    string `json:"printer_id" gorm:"Column:printer_id" binding:"required"`
	PrinterName  string `json:"printer_name" gorm:"Column:printer_name" binding:"required"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	PlantID      *uint  `json:"plant_id" gorm:"Column:plant_id"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	Username     string `json:"username" gorm:"Column:username"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
}

func (Printer) TableName() string { return "printers" }

// PlantAsset is a per-plant roster entry. Unlike the other entities its
// sequence numbers restart at 1 for every plant.
type PlantAsset struct {
	Base
	PlantID      uint   `json:"plant_id" gorm:"Column:plant_id"`
	AssetName    string `json:"asset_name" gorm:"Column:asset_name" binding:"required"`
	EmployeeName string `json:"employee_name" gorm:"Column:employee_name"`
	DepartmentID *uint  `json:"department_id" gorm:"Column:department_id"`
	Username     string `json:"username" gorm:"Column:username"`
	SerialNumber string `json:"serial_number" gorm:"Column:serial_number"`
	DeviceType   string `json:"device_type" gorm:"Column:device_type"`
	Hostname     string `json:"hostname" gorm:"Column:hostname"`
	LastName     string `json:"last_name" gorm:"Column:last_name"`
}

func (PlantAsset) TableName() string { return "plant_assets" }

func (a *PlantAsset) SequenceScope() *uint { return &a.PlantID }

// SequenceCounter backs the per-scope serial numbering. One row per entity
// table (scope_key 0) or per entity/plant pair. The value only ever grows,
// so numbers are never reissued after a soft delete.
type SequenceCounter struct {
	Entity   string `gorm:"primaryKey;Column:entity"`
	ScopeKey uint   `gorm:"primaryKey;Column:scope_key;autoIncrement:false"`
	Value    int64  `gorm:"Column:value"`
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
