package workorder

import (
	"rugcraft/domain"
	"rugcraft/persistence"
	"rugcraft/session"
)

var (
	QueryStageHistoryFunc = QueryStageHistory
)

// QueryStageHistory lists a work order's stage history in creation order,
// optionally narrowed by stage and entry status. No match is an empty
// result, not an error.
func QueryStageHistory(query *domain.StageHistoryQuery, s *session.Session) ([]domain.WorkOrderStage, error) {
	entries := []domain.WorkOrderStage{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	q := db.Where(&domain.WorkOrderStage{WorkOrderID: query.WorkOrderID})
	if query.Stage != "" {
		q = q.Where("stage = ?", query.Stage)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	if err := q.Order("create_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
