package service

import (
	"github.com/verso-cms/verso/app/core"
	"github.com/verso-cms/verso/app/response"
	"github.com/verso-cms/verso/cmd/service/handler"
	"github.com/verso-cms/verso/cmd/service/middleware"
	"github.com/verso-cms/verso/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.ApiMetrics(s.Core))

	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		resources := apiV1.Group("/resources")
		{
			resources.POST("", s.CreateResource)
			resources.GET("", s.ListResources)
			resources.GET("/:resourceid", s.GetResource)
			resources.PUT("/:resourceid", s.UpdateResource)
			resources.PUT("/:resourceid/state", s.UpdateResourceState)
			resources.DELETE("/:resourceid", s.DeleteResource)
			resources.GET("/:resourceid/versions", s.GetResourceVersions)
		}
	}
}
