package domain

import (
	"time"

	"rugcraft/domain/stage"

	"github.com/fundwit/go-commons/types"
)

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusOnHold     WorkOrderStatus = "on_hold"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// WorkOrder is one unit of manufacturing work, corresponding to one item
// of an external customer order. Its current_stage is always a catalog
// stage; status becomes completed only when the terminal stage is reached.
type WorkOrder struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	OrderID     string `json:"order_id" gorm:"index:idx_order"`
	OrderItemID string `json:"order_item_id" gorm:"index:idx_order_item"`

	Title string `json:"title"`
	Size  string `json:"size"`
	SKU   string `json:"sku" gorm:"column:sku"`

	CurrentStage stage.Stage     `json:"current_stage"`
	Status       WorkOrderStatus `json:"status"`
	Priority     Priority        `json:"priority"`

	AssignedTo types.ID `json:"assigned_to"`

	DueDate     types.Timestamp `json:"due_date" sql:"type:DATETIME(6)"`
	StartedAt   types.Timestamp `json:"started_at" sql:"type:DATETIME(6)"`
	CompletedAt types.Timestamp `json:"completed_at" sql:"type:DATETIME(6)"`

	Notes string `json:"notes" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"create_time" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"update_time" sql:"type:DATETIME(6) NOT NULL"`
	DeletedAt  *time.Time      `json:"-" sql:"index"`
}

func (r WorkOrder) TableName() string {
	return "work_order"
}

type WorkOrderDetail struct {
	WorkOrder

	Stages []WorkOrderStage `json:"stages" gorm:"-"`
}

type WorkOrdersFromOrderCreation struct {
	Priority Priority        `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	DueDate  types.Timestamp `json:"due_date"`
	Notes    string          `json:"notes"`
}

type WorkOrderUpdating struct {
	Title      string          `json:"title" binding:"omitempty,lte=255"`
	Priority   Priority        `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	Status     WorkOrderStatus `json:"status" binding:"omitempty,oneof=pending in_progress on_hold cancelled"`
	AssignedTo types.ID        `json:"assigned_to"`
	DueDate    types.Timestamp `json:"due_date"`
	Notes      string          `json:"notes"`
}

type WorkOrderQuery struct {
	Status     WorkOrderStatus `json:"status" form:"status" binding:"omitempty,oneof=pending in_progress on_hold completed cancelled"`
	Stage      stage.Stage     `json:"stage" form:"stage"`
	Priority   Priority        `json:"priority" form:"priority" binding:"omitempty,oneof=low normal high urgent"`
	AssignedTo types.ID        `json:"assigned_to" form:"assigned_to"`
	Title      string          `json:"title" form:"title"`
}

type StageAdvancing struct {
	Notes      string   `json:"notes"`
	AssignedTo types.ID `json:"assigned_to"`
}

type StageAdvanceResult struct {
	WorkOrder     WorkOrder   `json:"work_order"`
	PreviousStage stage.Stage `json:"previous_stage"`
	CurrentStage  stage.Stage `json:"current_stage"`
}

type BoardColumn struct {
	Stage      stage.Stage `json:"stage"`
	WorkOrders []WorkOrder `json:"work_orders"`
}
