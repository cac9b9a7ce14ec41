package servehttp

import (
	"net/http"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/artisan"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathArtisans = "/v1/artisans"
)

func RegisterArtisansRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathArtisans, middleWares...)
	g.GET("", handleQueryArtisans)
	g.GET(":id", handleDetailArtisan)
	g.POST("", handleCreateArtisan)
}

func handleQueryArtisans(c *gin.Context) {
	query := domain.ArtisanQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	artisans, err := artisan.QueryArtisansFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"data": artisans, "total": len(artisans)})
}

func handleDetailArtisan(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	detail, err := artisan.DetailArtisanFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func handleCreateArtisan(c *gin.Context) {
	creation := domain.ArtisanCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	record, err := artisan.CreateArtisanFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}
