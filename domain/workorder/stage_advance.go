package workorder

import (
	"errors"
	"strconv"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/event"
	"rugcraft/idgen"
	"rugcraft/persistence"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	AdvanceStageFunc = AdvanceStage
)

// AdvanceStage moves a work order forward by exactly one pipeline stage:
// the active stage history entry is closed, a new active entry is opened
// for the next stage, and the work order record follows. The whole
// read-modify-write runs in one transaction; the work order update is
// guarded by the observed current_stage, so concurrent calls on the same
// id can not both apply — the loser rolls back without a trace.
func AdvanceStage(id types.ID, c *domain.StageAdvancing, s *session.Session) (*domain.StageAdvanceResult, error) {
	var result *domain.StageAdvanceResult
	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	err1 := db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := findWorkOrder(tx, id)
		if err != nil {
			return err
		}

		nextStage, found := stage.Next(workOrder.CurrentStage)
		if !found {
			return &bizerror.ErrFinalStage{CurrentStage: workOrder.CurrentStage}
		}

		now := types.CurrentTimestamp()

		// close the active entry of the stage being left. Seeded work
		// orders may not have one; more than one means the history is
		// already corrupt and the transition must not paper over it.
		activeEntries := []domain.WorkOrderStage{}
		if err := tx.Where(&domain.WorkOrderStage{WorkOrderID: id, Stage: workOrder.CurrentStage,
			Status: domain.StageEntryStatusActive}).Find(&activeEntries).Error; err != nil {
			return err
		}
		if len(activeEntries) > 1 {
			return &bizerror.ErrStageConflict{WorkOrderID: id.String()}
		}
		if len(activeEntries) == 1 {
			q := tx.Model(&domain.WorkOrderStage{}).Where("id = ?", activeEntries[0].ID).
				Updates(map[string]interface{}{"status": domain.StageEntryStatusCompleted, "completed_at": now})
			if err := q.Error; err != nil {
				return err
			}
			if q.RowsAffected != 1 {
				return errors.New("expected affected row is 1, but actual is " + strconv.FormatInt(q.RowsAffected, 10))
			}
		}

		newEntry := domain.WorkOrderStage{
			ID:          idgen.NextID(stageEntryIdWorker),
			WorkOrderID: id,
			Stage:       nextStage,
			Status:      domain.StageEntryStatusActive,
			StartedAt:   now,
			AssignedTo:  c.AssignedTo,
			Notes:       c.Notes,
			CreateTime:  now,
		}
		if err := tx.Create(&newEntry).Error; err != nil {
			return err
		}

		isFinal := stage.IsTerminal(nextStage)
		newStatus := domain.WorkOrderStatusInProgress
		changes := map[string]interface{}{
			"current_stage": nextStage,
			"status":        newStatus,
			"update_time":   now,
		}
		if workOrder.StartedAt.IsZero() {
			changes["started_at"] = now
		}
		if isFinal {
			newStatus = domain.WorkOrderStatusCompleted
			changes["status"] = newStatus
			changes["completed_at"] = now
		}

		q := tx.Model(&domain.WorkOrder{}).
			Where(&domain.WorkOrder{ID: id, CurrentStage: workOrder.CurrentStage}).
			Updates(changes)
		if err := q.Error; err != nil {
			return err
		}
		if q.RowsAffected != 1 {
			return errors.New("expected affected row is 1, but actual is " + strconv.FormatInt(q.RowsAffected, 10))
		}

		updatedWorkOrder := domain.WorkOrder{}
		if err := tx.Where(&domain.WorkOrder{ID: id}).First(&updatedWorkOrder).Error; err != nil {
			return err
		}

		ev, err = CreateStageAdvancedEvent(&updatedWorkOrder, workOrder.CurrentStage, nextStage,
			workOrder.Status, newStatus, &s.Identity, tx)
		if err != nil {
			return err
		}

		result = &domain.StageAdvanceResult{
			WorkOrder:     updatedWorkOrder,
			PreviousStage: workOrder.CurrentStage,
			CurrentStage:  nextStage,
		}
		return nil
	})
	if err1 != nil {
		return nil, err1
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return result, nil
}
