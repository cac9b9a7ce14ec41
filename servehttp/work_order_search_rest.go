package servehttp

import (
	"net/http"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/indices/search"
	"rugcraft/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathWorkOrderSearch = "/v1/work-order-search"
)

func RegisterWorkOrderSearchRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkOrderSearch, middleWares...)
	g.GET("", handleSearchWorkOrders)
}

func handleSearchWorkOrders(c *gin.Context) {
	query := domain.WorkOrderQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	records, err := search.SearchWorkOrdersFunc(query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "total": len(records)})
}
