package tables

import (
	"time"
)

type StoreMode string

const (
	StoreModeAuto   StoreMode = "auto"
	StoreModeManual StoreMode = "manual"
)

// StoreSettingsRowId is the fixed id of the singleton settings row.
const StoreSettingsRowId = 1

// StoreSettings is the single global store configuration row. It is created
// lazily on first write; at most one row ever exists.
type StoreSettings struct {
	tableName struct{} `bun:"table:store_settings,alias:ss"`
	Id        int64    `bun:"id,pk" json:"id"`

	Mode          StoreMode `bun:"mode,notnull,default:'auto'" json:"mode"`
	IsOpen        bool      `bun:"is_open,notnull,default:true" json:"is_open"`
	ClosedMessage *string   `bun:"closed_message,nullzero" json:"closed_message,omitempty"`
	ShopEnabled   bool      `bun:"shop_enabled,notnull,default:true" json:"shop_enabled"`

	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
