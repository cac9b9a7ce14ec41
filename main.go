package main

import (
	"context"
	"net/http"

	"rugcraft/bizerror"
	"rugcraft/client/es"
	"rugcraft/common"
	"rugcraft/domain"
	"rugcraft/event"
	"rugcraft/indices"
	"rugcraft/infra/tracing"
	"rugcraft/persistence"
	"rugcraft/servehttp"
	"rugcraft/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Infoln("service start")

	tracerCloser, err := tracing.SetupTracer()
	if err != nil {
		logrus.Fatalf("failed to setup tracer %v\n", err)
	}
	defer tracerCloser.Close()

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(
		&domain.WorkOrder{}, &domain.WorkOrderStage{}, &domain.Artisan{}, &event.EventRecord{},
	).Error
	if err != nil {
		logrus.Fatalf("database migration failed %v\n", err)
	}

	es.CreateClientFromEnv()
	event.EventHandlers = append(event.EventHandlers, indices.IndexWorkOrderEventHandle)

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, common.GetServiceName())
	})

	auth := session.SimpleAuthFilter()
	servehttp.RegisterWorkOrdersRestAPI(engine, auth)
	servehttp.RegisterWorkOrderStagesRestAPI(engine, auth)
	servehttp.RegisterWorkOrderBoardsRestAPI(engine, auth)
	servehttp.RegisterWorkOrderSearchRestAPI(engine, auth)
	servehttp.RegisterArtisansRestAPI(engine, auth)
	indices.RegisterIndicesRestAPI(engine, auth)

	servehttp.StartHTTPServer(engine)
}
