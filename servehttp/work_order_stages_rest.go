package servehttp

import (
	"errors"
	"io"
	"net/http"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/stage"
	"rugcraft/domain/workorder"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterWorkOrderStagesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkOrders, middleWares...)
	g.GET(":id/stages", handleQueryWorkOrderStages)
	g.POST(":id/stages", handleAdvanceWorkOrderStage)
}

type stageHistoryFilter struct {
	Stage  stage.Stage             `json:"stage" form:"stage"`
	Status domain.StageEntryStatus `json:"status" form:"status" binding:"omitempty,oneof=pending active completed"`
}

func handleQueryWorkOrderStages(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	filter := stageHistoryFilter{}
	if err := c.MustBindWith(&filter, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	query := domain.StageHistoryQuery{WorkOrderID: id, Stage: filter.Stage, Status: filter.Status}
	entries, err := workorder.QueryStageHistoryFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, domain.StageHistoryResult{Stages: entries, AvailableStages: stage.Stages})
}

func handleAdvanceWorkOrderStage(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	advancing := domain.StageAdvancing{}
	if err := bindOptionalBody(c, &advancing); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	result, err := workorder.AdvanceStageFunc(id, &advancing, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

// bindOptionalBody binds a JSON body, treating an absent body as empty.
func bindOptionalBody(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindBodyWith(obj, binding.JSON)
	if err != nil && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
