package servehttp_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/domain/workorder"
	"rugcraft/servehttp"
	"rugcraft/session"
	"rugcraft/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestQueryWorkOrdersAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrdersRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, servehttp.PathWorkOrders+"?status=bad", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
			"message":"Key: 'WorkOrderQuery.Status' Error:Field validation for 'Status' failed on the 'oneof' tag",
			"data":null}`))
	})

	t.Run("should be able to handle error", func(t *testing.T) {
		workorder.QueryWorkOrdersFunc = func(q *domain.WorkOrderQuery, s *session.Session) ([]domain.WorkOrder, error) {
			return nil, errors.New("some error")
		}
		req := httptest.NewRequest(http.MethodGet, servehttp.PathWorkOrders, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error", "message":"some error", "data":null}`))
	})

	t.Run("should be able to handle query request successfully", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 3, 1, 10, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		var q1 domain.WorkOrderQuery
		workorder.QueryWorkOrdersFunc = func(q *domain.WorkOrderQuery, s *session.Session) ([]domain.WorkOrder, error) {
			q1 = *q
			return []domain.WorkOrder{{ID: 123, OrderID: "order-1", OrderItemID: "item-1",
				Title: "persian 6x9", Size: "180x270", SKU: "RC-0001",
				CurrentStage: stage.Tufting, Status: domain.WorkOrderStatusInProgress,
				Priority: domain.PriorityHigh, AssignedTo: 7, StartedAt: demoTime,
				CreateTime: demoTime, UpdateTime: demoTime}}, nil
		}
		req := httptest.NewRequest(http.MethodGet,
			servehttp.PathWorkOrders+"?status=in_progress&stage=tufting&priority=high&title=persian", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"data":[{"id":"123", "order_id":"order-1", "order_item_id":"item-1",
			"title":"persian 6x9", "size":"180x270", "sku":"RC-0001",
			"current_stage":"tufting", "status":"in_progress", "priority":"high", "assigned_to":"7",
			"due_date":null, "started_at":"` + timeString + `", "completed_at":null, "notes":"",
			"create_time":"` + timeString + `", "update_time":"` + timeString + `"}], "total": 1}`))
		Expect(q1).To(Equal(domain.WorkOrderQuery{Status: domain.WorkOrderStatusInProgress,
			Stage: stage.Tufting, Priority: domain.PriorityHigh, Title: "persian"}))
	})
}

func TestDetailWorkOrderAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrdersRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, servehttp.PathWorkOrders+"/abc", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
	})

	t.Run("should respond not found for unknown work order", func(t *testing.T) {
		workorder.DetailWorkOrderFunc = func(id types.ID, s *session.Session) (*domain.WorkOrderDetail, error) {
			return nil, &bizerror.ErrWorkOrderNotFound{}
		}
		req := httptest.NewRequest(http.MethodGet, servehttp.PathWorkOrders+"/404", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(`{"code":"workorder.not_found", "message":"Work order not found", "data":null}`))
	})

	t.Run("should be able to handle detail request successfully", func(t *testing.T) {
		var id1 types.ID
		workorder.DetailWorkOrderFunc = func(id types.ID, s *session.Session) (*domain.WorkOrderDetail, error) {
			id1 = id
			return &domain.WorkOrderDetail{
				WorkOrder: domain.WorkOrder{ID: id, Title: "persian 6x9", CurrentStage: stage.DesignApproved,
					Status: domain.WorkOrderStatusPending, Priority: domain.PriorityNormal},
				Stages: []domain.WorkOrderStage{{ID: 200, WorkOrderID: id, Stage: stage.DesignApproved,
					Status: domain.StageEntryStatusActive}},
			}, nil
		}
		req := httptest.NewRequest(http.MethodGet, servehttp.PathWorkOrders+"/123", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"id":"123"`))
		Expect(body).To(ContainSubstring(`"stages":[`))
		Expect(id1).To(Equal(types.ID(123)))
	})
}

func TestUpdateWorkOrderAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrdersRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, servehttp.PathWorkOrders+"/100", strings.NewReader(`{"status":"completed"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
			"message":"Key: 'WorkOrderUpdating.Status' Error:Field validation for 'Status' failed on the 'oneof' tag",
			"data":null}`))

		req = httptest.NewRequest(http.MethodPatch, servehttp.PathWorkOrders+"/100", nil)
		status, body, _ = testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param", "message":"EOF", "data":null}`))
	})

	t.Run("should be able to handle update request successfully", func(t *testing.T) {
		var u1 domain.WorkOrderUpdating
		workorder.UpdateWorkOrderFunc = func(id types.ID, u *domain.WorkOrderUpdating, s *session.Session) (*domain.WorkOrder, error) {
			u1 = *u
			return &domain.WorkOrder{ID: id, Title: "persian 6x9", Priority: domain.PriorityUrgent,
				CurrentStage: stage.DesignApproved, Status: domain.WorkOrderStatusPending}, nil
		}
		req := httptest.NewRequest(http.MethodPatch, servehttp.PathWorkOrders+"/100",
			strings.NewReader(`{"priority":"urgent","notes":"deadline moved"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"priority":"urgent"`))
		Expect(u1).To(Equal(domain.WorkOrderUpdating{Priority: domain.PriorityUrgent, Notes: "deadline moved"}))
	})
}

func TestDeleteWorkOrderAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrdersRestAPI(router)

	t.Run("should be able to handle delete request successfully", func(t *testing.T) {
		var id1 types.ID
		workorder.DeleteWorkOrderFunc = func(id types.ID, s *session.Session) error {
			id1 = id
			return nil
		}
		req := httptest.NewRequest(http.MethodDelete, servehttp.PathWorkOrders+"/100", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNoContent))
		Expect(body).To(BeEmpty())
		Expect(id1).To(Equal(types.ID(100)))
	})

	t.Run("should respond not found for unknown work order", func(t *testing.T) {
		workorder.DeleteWorkOrderFunc = func(id types.ID, s *session.Session) error {
			return &bizerror.ErrWorkOrderNotFound{}
		}
		req := httptest.NewRequest(http.MethodDelete, servehttp.PathWorkOrders+"/404", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(`{"code":"workorder.not_found", "message":"Work order not found", "data":null}`))
	})
}

func TestCreateWorkOrdersFromOrderAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrdersRestAPI(router)

	t.Run("should be able to handle creation request successfully", func(t *testing.T) {
		var orderID1 string
		var c1 domain.WorkOrdersFromOrderCreation
		workorder.CreateWorkOrdersFromOrderFunc = func(orderID string, c *domain.WorkOrdersFromOrderCreation,
			s *session.Session) ([]domain.WorkOrder, error) {
			orderID1 = orderID
			c1 = *c
			return []domain.WorkOrder{{ID: 123, OrderID: orderID, CurrentStage: stage.DesignApproved,
				Status: domain.WorkOrderStatusPending, Priority: domain.PriorityHigh}}, nil
		}
		req := httptest.NewRequest(http.MethodPost, servehttp.PathWorkOrders+"/from-order/order-1",
			strings.NewReader(`{"priority":"high"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body).To(ContainSubstring(`"total":1`))
		Expect(body).To(ContainSubstring(`"order_id":"order-1"`))
		Expect(orderID1).To(Equal("order-1"))
		Expect(c1).To(Equal(domain.WorkOrdersFromOrderCreation{Priority: domain.PriorityHigh}))
	})

	t.Run("should accept an absent body", func(t *testing.T) {
		workorder.CreateWorkOrdersFromOrderFunc = func(orderID string, c *domain.WorkOrdersFromOrderCreation,
			s *session.Session) ([]domain.WorkOrder, error) {
			return []domain.WorkOrder{}, nil
		}
		req := httptest.NewRequest(http.MethodPost, servehttp.PathWorkOrders+"/from-order/order-1", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body).To(MatchJSON(`{"data":[], "total":0}`))
	})
}
