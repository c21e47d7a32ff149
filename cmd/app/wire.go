//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/securian/medsummary/internal/bootstrap"
	"github.com/securian/medsummary/internal/domain/summary"
	"github.com/securian/medsummary/internal/infra/config"
	"github.com/securian/medsummary/internal/infra/llm/swissre"
	httpiface "github.com/securian/medsummary/internal/interface/http"
	"github.com/securian/medsummary/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryClient,
		provideTokenSource,
		provideRepository,
		provideArchive,
		summary.NewService,
		wire.Bind(new(summary.Client), new(*swissre.Client)),
		httpiface.NewSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
