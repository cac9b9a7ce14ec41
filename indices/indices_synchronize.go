package indices

import (
	"context"
	"fmt"
	"sync"

	"rugcraft/bizerror"
	"rugcraft/client/es"
	"rugcraft/domain"
	"rugcraft/domain/workorder"
	"rugcraft/event"
	"rugcraft/session"

	"github.com/sirupsen/logrus"
)

var (
	WorkOrderIndexEventHandlerName = "workOrderIndexer"
	indexRobot                     = &session.Session{
		Context:  context.Background(),
		Token:    "index-robot",
		Identity: session.Identity{ID: 10, Name: "index-robot"},
	}

	lock    sync.Mutex
	running bool

	IndicesFullSyncFunc    = IndicesFullSync
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun
)

func ScheduleNewSyncRun(s *session.Session) (bool, error) {
	if !s.Perms.HasRole(session.SystemAdminPermission) {
		return false, bizerror.ErrForbidden
	}

	lock.Lock()
	if running {
		lock.Unlock()
		return false, nil
	}
	running = true
	lock.Unlock()

	waitRunning := sync.WaitGroup{}
	waitRunning.Add(1)
	go func() {
		waitRunning.Done()
		defer func() {
			lock.Lock()
			running = false
			lock.Unlock()
		}()
		IndicesFullSyncFunc()
	}()
	waitRunning.Wait()
	return true, nil
}

var (
	SyncBatchSize = 500
)

func IndicesFullSync() (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			e, ok := ret.(error)
			if ok {
				err = e
			} else {
				err = fmt.Errorf("error on indices full sync: %v", ret)
			}
		}
	}()

	page := 1
	for {
		workOrders, err := workorder.LoadWorkOrdersFunc(page, SyncBatchSize)
		if err != nil {
			logrus.Warnf("indices full sync: error on load work orders(page = %d, pageSize = %d): %v", page, SyncBatchSize, err)
			page++
			continue
		}

		if len(workOrders) == 0 {
			logrus.Infof("indices full sync: there are no more work orders to index")
			return nil // loop exit
		}

		if err := IndexWorkOrders(workOrders, indexRobot); err != nil {
			logrus.Warnf("indices full sync: error on index work orders(page = %d, pageSize = %d): %v", page, SyncBatchSize, err)
		}
		page++
	}
}

// IndexWorkOrderEventHandle keeps the search index following work order
// mutations. Registered in main; a failed sync is reported, not retried.
func IndexWorkOrderEventHandle(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != event.SourceTypeWorkOrder {
		return nil
	}

	if e.EventCategory == event.EventCategoryDeleted {
		if err := es.DeleteDocumentByIdFunc(WorkOrderIndexName, e.SourceId, indexRobot); err != nil {
			return &event.EventHandleResult{Success: false, Message: err.Error(),
				HandlerIdentifier: WorkOrderIndexEventHandlerName}
		}
		return &event.EventHandleResult{Success: true, HandlerIdentifier: WorkOrderIndexEventHandlerName}
	}

	detail, err := workorder.DetailWorkOrderFunc(e.SourceId, indexRobot)
	if err != nil {
		return &event.EventHandleResult{Success: false, Message: err.Error(),
			HandlerIdentifier: WorkOrderIndexEventHandlerName}
	}

	if err := IndexWorkOrders([]domain.WorkOrder{detail.WorkOrder}, indexRobot); err != nil {
		return &event.EventHandleResult{Success: false, Message: err.Error(),
			HandlerIdentifier: WorkOrderIndexEventHandlerName}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: WorkOrderIndexEventHandlerName}
}
