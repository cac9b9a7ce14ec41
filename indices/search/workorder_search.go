package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"rugcraft/client/es"
	"rugcraft/domain"
	"rugcraft/indices"
	"rugcraft/session"
)

var (
	SearchWorkOrdersFunc = SearchWorkOrders
)

// SearchWorkOrders answers the management app's search box from the
// work-order index instead of the database.
func SearchWorkOrders(q domain.WorkOrderQuery, s *session.Session) ([]domain.WorkOrder, error) {
	filters := make([]es.H, 0, 5)
	if q.Title != "" {
		filters = append(filters, es.H{"match": es.H{"title": es.H{"query": q.Title, "operator": "AND"}}})
	}
	if q.Status != "" {
		filters = append(filters, es.H{"term": es.H{"status": q.Status}})
	}
	if q.Stage != "" {
		filters = append(filters, es.H{"term": es.H{"current_stage": q.Stage}})
	}
	if q.Priority != "" {
		filters = append(filters, es.H{"term": es.H{"priority": q.Priority}})
	}
	if q.AssignedTo != 0 {
		filters = append(filters, es.H{"term": es.H{"assigned_to": q.AssignedTo}})
	}

	sorts := []es.H{{"create_time": es.H{"order": "desc"}}}

	root := es.H{"bool": es.H{"filter": filters}}
	r, err := es.SearchFunc(indices.WorkOrderIndexName, es.H{"size": 10000, "query": root, "sort": sorts}, s)
	if err != nil {
		return nil, err
	}

	workOrders := make([]domain.WorkOrder, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		workOrder := domain.WorkOrder{}
		if err := json.NewDecoder(strings.NewReader(string(hit.Source))).Decode(&workOrder); err != nil {
			return nil, fmt.Errorf(string(hit.Source))
		}
		workOrders = append(workOrders, workOrder)
	}
	return workOrders, nil
}
