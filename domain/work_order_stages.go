package domain

import (
	"time"

	"rugcraft/domain/stage"

	"github.com/fundwit/go-commons/types"
)

type StageEntryStatus string

const (
	StageEntryStatusPending   StageEntryStatus = "pending"
	StageEntryStatusActive    StageEntryStatus = "active"
	StageEntryStatusCompleted StageEntryStatus = "completed"
)

// WorkOrderStage is the audit record of a work order occupying one
// pipeline stage for a span of time. A work order has at most one active
// entry at any moment.
type WorkOrderStage struct {
	ID          types.ID `json:"id" gorm:"primary_key"`
	WorkOrderID types.ID `json:"work_order_id" gorm:"index:idx_work_order"`

	Stage  stage.Stage      `json:"stage"`
	Status StageEntryStatus `json:"status"`

	StartedAt   types.Timestamp `json:"started_at" sql:"type:DATETIME(6)"`
	CompletedAt types.Timestamp `json:"completed_at" sql:"type:DATETIME(6)"`

	AssignedTo   types.ID `json:"assigned_to"`
	Notes        string   `json:"notes" sql:"type:TEXT"`
	QualityScore int      `json:"quality_score"`
	Issues       string   `json:"issues" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"create_time" sql:"type:DATETIME(6) NOT NULL"`
	DeletedAt  *time.Time      `json:"-" sql:"index"`
}

func (r WorkOrderStage) TableName() string {
	return "work_order_stage"
}

type StageHistoryQuery struct {
	WorkOrderID types.ID         `json:"work_order_id" form:"work_order_id" binding:"required"`
	Stage       stage.Stage      `json:"stage" form:"stage"`
	Status      StageEntryStatus `json:"status" form:"status" binding:"omitempty,oneof=pending active completed"`
}

type StageHistoryResult struct {
	Stages          []WorkOrderStage `json:"stages"`
	AvailableStages []stage.Stage    `json:"available_stages"`
}
