package testinfra

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"rugcraft/client/orders"
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/domain/workorder"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

// ExecuteRequest runs a request against the router and returns the
// response status, body and headers.
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, http.Header) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	bodyBytes, _ := ioutil.ReadAll(w.Body)
	return w.Code, string(bodyBytes), w.Header()
}

// BuildSession builds a caller session for tests
func BuildSession(uid types.ID, perms ...string) *session.Session {
	return &session.Session{
		Context:  context.Background(),
		Token:    "test-token",
		Identity: session.Identity{ID: uid, Name: "test-user"},
		Perms:    perms,
	}
}

// BuildWorkOrder creates a single work order through the regular creation
// path, backed by a stubbed order service.
func BuildWorkOrder(title, orderID, orderItemID string, s *session.Session) *domain.WorkOrder {
	orders.FetchOrderFunc = func(id string, sec *session.Session) (*orders.Order, error) {
		return &orders.Order{
			ID: id,
			Items: []orders.OrderItem{
				{ID: orderItemID, Title: title, Size: "120x180", SKU: "RC-" + orderItemID},
			},
		}, nil
	}

	created, err := workorder.CreateWorkOrdersFromOrder(orderID, &domain.WorkOrdersFromOrderCreation{}, s)
	Expect(err).To(BeNil())
	Expect(len(created)).To(Equal(1))
	Expect(created[0].CurrentStage).To(Equal(stage.DesignApproved))
	return &created[0]
}
