package event

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryCreated         = "CREATED"
	EventCategoryDeleted         = "DELETED"
	EventCategoryPropertyUpdated = "PROPERTY_UPDATED"
	EventCategoryStageAdvanced   = "STAGE_ADVANCED"
)

const (
	SourceTypeWorkOrder = "WORK_ORDER"
	SourceTypeArtisan   = "ARTISAN"
)

type EventCategory string

type Event struct {
	SourceId   types.ID `json:"source_id"`
	SourceType string   `json:"source_type"`
	SourceDesc string   `json:"source_desc"`

	CreatorId   types.ID `json:"creator_id"`
	CreatorName string   `json:"creator_name"`

	EventCategory     EventCategory     `json:"event_category"`
	UpdatedProperties UpdatedProperties `json:"updated_properties" sql:"type:TEXT"`
}

type EventRecord struct {
	Event

	Timestamp types.Timestamp `json:"timestamp" sql:"type:DATETIME(6)"`
	Synced    bool            `json:"synced"`
}

func (r *EventRecord) TableName() string {
	return "events"
}

type UpdatedProperty struct {
	PropertyName string `json:"property_name"`
	PropertyDesc string `json:"property_desc"`

	OldValue     string `json:"old_value"`
	OldValueDesc string `json:"old_value_desc"`
	NewValue     string `json:"new_value"`
	NewValueDesc string `json:"new_value_desc"`
}

type UpdatedProperties []UpdatedProperty

func (t UpdatedProperties) Value() (driver.Value, error) {
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (t *UpdatedProperties) Scan(v interface{}) error {
	jsonString, ok := v.(string)
	if !ok {
		jsonByte, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
		}
		jsonString = string(jsonByte)
	}
	return json.Unmarshal([]byte(jsonString), t)
}
