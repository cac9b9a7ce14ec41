package workorder

import (
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/event"
	"rugcraft/session"

	"github.com/jinzhu/gorm"
)

func CreateWorkOrderCreatedEvent(w *domain.WorkOrder, identity *session.Identity, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(event.SourceTypeWorkOrder, w.ID, w.Title, event.EventCategoryCreated, nil, identity, tx)
}

func CreateWorkOrderDeletedEvent(w *domain.WorkOrder, identity *session.Identity, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(event.SourceTypeWorkOrder, w.ID, w.Title, event.EventCategoryDeleted, nil, identity, tx)
}

func CreateWorkOrderPropertyUpdatedEvent(w *domain.WorkOrder, properties []event.UpdatedProperty,
	identity *session.Identity, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(event.SourceTypeWorkOrder, w.ID, w.Title, event.EventCategoryPropertyUpdated,
		properties, identity, tx)
}

func CreateStageAdvancedEvent(w *domain.WorkOrder, fromStage, toStage stage.Stage,
	fromStatus, toStatus domain.WorkOrderStatus, identity *session.Identity, tx *gorm.DB) (*event.EventRecord, error) {

	properties := []event.UpdatedProperty{
		updatedProperty("CurrentStage", string(fromStage), string(toStage)),
		updatedProperty("Status", string(fromStatus), string(toStatus)),
	}
	return event.CreateEvent(event.SourceTypeWorkOrder, w.ID, w.Title, event.EventCategoryStageAdvanced,
		properties, identity, tx)
}
