package indices

import (
	"net/http"
	"time"

	"rugcraft/bizerror"
	"rugcraft/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	PathIndexRequests = "/v1/index-requests"

	// a full resync scans every work order, so new requests are throttled
	indexRequestLimiter = rate.NewLimiter(rate.Every(10*time.Second), 1)
)

func RegisterIndicesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathIndexRequests, middleWares...)
	g.POST("", handleIndexRequest)
}

func handleIndexRequest(c *gin.Context) {
	if !indexRequestLimiter.Allow() {
		panic(bizerror.ErrTooManyRequest)
	}

	success, err := ScheduleNewSyncRunFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": success})
}
