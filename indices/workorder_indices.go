package indices

import (
	"fmt"

	"rugcraft/client/es"
	"rugcraft/domain"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var (
	WorkOrderIndexName = "work_orders"
)

type WorkOrderDocument struct {
	domain.WorkOrder
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func IndexWorkOrders(workOrders []domain.WorkOrder, s *session.Session) error {
	docs := make([]WorkOrderDocument, 0, len(workOrders))
	for _, workOrder := range workOrders {
		docs = append(docs, WorkOrderDocument{WorkOrder: workOrder})
	}

	return saveWorkOrderDocuments(docs, s)
}

func saveWorkOrderDocuments(docs []WorkOrderDocument, s *session.Session) error {
	errs := BatchActionError{}

	for _, doc := range docs {
		if err := es.IndexFunc(WorkOrderIndexName, doc.ID, doc, s); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index work order %d %s: %v\n", doc.ID, doc.Title, err)
		} else {
			logrus.Infof("index work order %d successfully\n", doc.ID)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
