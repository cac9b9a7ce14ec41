package servehttp

import (
	"net/http"

	"rugcraft/domain/workorder"
	"rugcraft/session"

	"github.com/gin-gonic/gin"
)

var (
	PathWorkOrderBoards = "/v1/work-order-boards"
)

func RegisterWorkOrderBoardsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkOrderBoards, middleWares...)
	g.GET("", handleQueryWorkOrderBoards)
}

func handleQueryWorkOrderBoards(c *gin.Context) {
	columns, err := workorder.BoardWorkOrdersFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}
