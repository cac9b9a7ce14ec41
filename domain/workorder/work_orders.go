package workorder

import (
	"errors"
	"strconv"

	"rugcraft/bizerror"
	"rugcraft/client/orders"
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/event"
	"rugcraft/idgen"
	"rugcraft/persistence"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	workOrderIdWorker  = sonyflake.NewSonyflake(sonyflake.Settings{})
	stageEntryIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateWorkOrdersFromOrderFunc = CreateWorkOrdersFromOrder
	QueryWorkOrdersFunc           = QueryWorkOrders
	DetailWorkOrderFunc           = DetailWorkOrder
	UpdateWorkOrderFunc           = UpdateWorkOrder
	DeleteWorkOrderFunc           = DeleteWorkOrder
	BoardWorkOrdersFunc           = BoardWorkOrders
	LoadWorkOrdersFunc            = LoadWorkOrders
)

// CreateWorkOrdersFromOrder creates one work order per item of an external
// order, at the head of the pipeline. Items which already own a work order
// are skipped, so the call is safe to repeat.
func CreateWorkOrdersFromOrder(orderID string, c *domain.WorkOrdersFromOrderCreation, s *session.Session) ([]domain.WorkOrder, error) {
	order, err := orders.FetchOrderFunc(orderID, s)
	if err != nil {
		return nil, err
	}

	priority := c.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	var created []domain.WorkOrder
	var events []*event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	err1 := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var count int
			if err := tx.Model(&domain.WorkOrder{}).Where("order_item_id = ?", item.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			now := types.CurrentTimestamp()
			workOrder := domain.WorkOrder{
				ID:          idgen.NextID(workOrderIdWorker),
				OrderID:     order.ID,
				OrderItemID: item.ID,

				Title: item.Title,
				Size:  item.Size,
				SKU:   item.SKU,

				CurrentStage: stage.DesignApproved,
				Status:       domain.WorkOrderStatusPending,
				Priority:     priority,

				DueDate: c.DueDate,
				Notes:   c.Notes,

				CreateTime: now,
				UpdateTime: now,
			}
			if err := tx.Create(&workOrder).Error; err != nil {
				return err
			}

			initialEntry := domain.WorkOrderStage{
				ID:          idgen.NextID(stageEntryIdWorker),
				WorkOrderID: workOrder.ID,
				Stage:       stage.DesignApproved,
				Status:      domain.StageEntryStatusActive,
				StartedAt:   now,
				CreateTime:  now,
			}
			if err := tx.Create(&initialEntry).Error; err != nil {
				return err
			}

			ev, err := CreateWorkOrderCreatedEvent(&workOrder, &s.Identity, tx)
			if err != nil {
				return err
			}
			events = append(events, ev)
			created = append(created, workOrder)
		}
		return nil
	})
	if err1 != nil {
		return nil, err1
	}

	if event.InvokeHandlersFunc != nil {
		for _, ev := range events {
			event.InvokeHandlersFunc(ev)
		}
	}

	if created == nil {
		created = []domain.WorkOrder{}
	}
	return created, nil
}

func QueryWorkOrders(query *domain.WorkOrderQuery, s *session.Session) ([]domain.WorkOrder, error) {
	workOrders := []domain.WorkOrder{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	q := db.Model(&domain.WorkOrder{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Stage != "" {
		q = q.Where("current_stage = ?", query.Stage)
	}
	if query.Priority != "" {
		q = q.Where("priority = ?", query.Priority)
	}
	if query.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", query.AssignedTo)
	}
	if query.Title != "" {
		q = q.Where("title like ?", "%"+query.Title+"%")
	}

	if err := q.Order("create_time DESC").Find(&workOrders).Error; err != nil {
		return nil, err
	}
	return workOrders, nil
}

func DetailWorkOrder(id types.ID, s *session.Session) (*domain.WorkOrderDetail, error) {
	detail := domain.WorkOrderDetail{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Where(&domain.WorkOrder{ID: id}).First(&detail.WorkOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &bizerror.ErrWorkOrderNotFound{}
		}
		return nil, err
	}

	stages := []domain.WorkOrderStage{}
	if err := db.Where(&domain.WorkOrderStage{WorkOrderID: id}).
		Order("create_time ASC").Find(&stages).Error; err != nil {
		return nil, err
	}
	detail.Stages = stages
	return &detail, nil
}

func UpdateWorkOrder(id types.ID, u *domain.WorkOrderUpdating, s *session.Session) (*domain.WorkOrder, error) {
	var updatedWorkOrder domain.WorkOrder
	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	err1 := db.Transaction(func(tx *gorm.DB) error {
		originWorkOrder, err := findWorkOrder(tx, id)
		if err != nil {
			return err
		}

		now := types.CurrentTimestamp()
		changes := map[string]interface{}{"update_time": now}
		properties := []event.UpdatedProperty{}
		if u.Title != "" && u.Title != originWorkOrder.Title {
			changes["title"] = u.Title
			properties = append(properties, updatedProperty("Title", originWorkOrder.Title, u.Title))
		}
		if u.Priority != "" && u.Priority != originWorkOrder.Priority {
			changes["priority"] = u.Priority
			properties = append(properties, updatedProperty("Priority", string(originWorkOrder.Priority), string(u.Priority)))
		}
		if u.Status != "" && u.Status != originWorkOrder.Status {
			if originWorkOrder.Status == domain.WorkOrderStatusCompleted {
				return errors.New("completed work order can not be updated")
			}
			changes["status"] = u.Status
			properties = append(properties, updatedProperty("Status", string(originWorkOrder.Status), string(u.Status)))
		}
		if u.AssignedTo != 0 && u.AssignedTo != originWorkOrder.AssignedTo {
			changes["assigned_to"] = u.AssignedTo
			properties = append(properties, updatedProperty("AssignedTo", originWorkOrder.AssignedTo.String(), u.AssignedTo.String()))
		}
		if !u.DueDate.IsZero() {
			changes["due_date"] = u.DueDate
			properties = append(properties, updatedProperty("DueDate", originWorkOrder.DueDate.String(), u.DueDate.String()))
		}
		if u.Notes != "" && u.Notes != originWorkOrder.Notes {
			changes["notes"] = u.Notes
			properties = append(properties, updatedProperty("Notes", originWorkOrder.Notes, u.Notes))
		}

		q := tx.Model(&domain.WorkOrder{}).Where(&domain.WorkOrder{ID: id}).Updates(changes)
		if err := q.Error; err != nil {
			return err
		}
		if q.RowsAffected != 1 {
			return errors.New("expected affected row is 1, but actual is " + strconv.FormatInt(q.RowsAffected, 10))
		}

		if len(properties) > 0 {
			ev, err = CreateWorkOrderPropertyUpdatedEvent(originWorkOrder, properties, &s.Identity, tx)
			if err != nil {
				return err
			}
		}

		return tx.Where(&domain.WorkOrder{ID: id}).First(&updatedWorkOrder).Error
	})
	if err1 != nil {
		return nil, err1
	}

	if ev != nil && event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &updatedWorkOrder, nil
}

// DeleteWorkOrder soft-deletes a work order with its stage history. Audit
// records are kept; nothing is ever hard-removed.
func DeleteWorkOrder(id types.ID, s *session.Session) error {
	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	err1 := db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := findWorkOrder(tx, id)
		if err != nil {
			return err
		}

		ev, err = CreateWorkOrderDeletedEvent(workOrder, &s.Identity, tx)
		if err != nil {
			return err
		}

		if err := tx.Delete(domain.WorkOrder{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(domain.WorkOrderStage{}, "work_order_id = ?", id).Error
	})
	if err1 != nil {
		return err1
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

// BoardWorkOrders groups unfinished work orders into kanban columns.
func BoardWorkOrders(s *session.Session) ([]domain.BoardColumn, error) {
	workOrders := []domain.WorkOrder{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Where("current_stage in (?)", stage.BoardStages).
		Where("status in (?)", []domain.WorkOrderStatus{domain.WorkOrderStatusPending,
			domain.WorkOrderStatusInProgress, domain.WorkOrderStatusOnHold}).
		Order("create_time ASC").Find(&workOrders).Error; err != nil {
		return nil, err
	}

	columns := make([]domain.BoardColumn, 0, len(stage.BoardStages))
	for _, boardStage := range stage.BoardStages {
		column := domain.BoardColumn{Stage: boardStage, WorkOrders: []domain.WorkOrder{}}
		for _, workOrder := range workOrders {
			if workOrder.CurrentStage == boardStage {
				column.WorkOrders = append(column.WorkOrders, workOrder)
			}
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func LoadWorkOrders(page, size int) ([]domain.WorkOrder, error) {
	workOrders := []domain.WorkOrder{}
	db := persistence.ActiveDataSourceManager.GormDB(nil)
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	if err := db.Order("ID ASC").Offset(offset).Limit(size).Find(&workOrders).Error; err != nil {
		return nil, err
	}
	return workOrders, nil
}

func findWorkOrder(db *gorm.DB, id types.ID) (*domain.WorkOrder, error) {
	var workOrder domain.WorkOrder
	if err := db.Where(&domain.WorkOrder{ID: id}).First(&workOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &bizerror.ErrWorkOrderNotFound{}
		}
		return nil, err
	}
	return &workOrder, nil
}

func updatedProperty(name, oldValue, newValue string) event.UpdatedProperty {
	return event.UpdatedProperty{PropertyName: name, PropertyDesc: name,
		OldValue: oldValue, OldValueDesc: oldValue, NewValue: newValue, NewValueDesc: newValue}
}
