package servehttp

import (
	"net/http"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/workorder"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathWorkOrders = "/v1/work-orders"
)

func RegisterWorkOrdersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkOrders, middleWares...)
	g.GET("", handleQueryWorkOrders)
	g.GET(":id", handleDetailWorkOrder)
	g.PATCH(":id", handleUpdateWorkOrder)
	g.DELETE(":id", handleDeleteWorkOrder)
	g.POST("from-order/:orderId", handleCreateWorkOrdersFromOrder)
}

func handleQueryWorkOrders(c *gin.Context) {
	query := domain.WorkOrderQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrders, err := workorder.QueryWorkOrdersFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"data": workOrders, "total": len(workOrders)})
}

func handleDetailWorkOrder(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	detail, err := workorder.DetailWorkOrderFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func handleUpdateWorkOrder(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := domain.WorkOrderUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrderRecord, err := workorder.UpdateWorkOrderFunc(id, &updating, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrderRecord)
}

func handleDeleteWorkOrder(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := workorder.DeleteWorkOrderFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func handleCreateWorkOrdersFromOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		panic(&bizerror.ErrBadParam{})
	}
	creation := domain.WorkOrdersFromOrderCreation{}
	if err := bindOptionalBody(c, &creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	created, err := workorder.CreateWorkOrdersFromOrderFunc(orderID, &creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, gin.H{"data": created, "total": len(created)})
}
