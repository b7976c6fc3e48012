//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/health-companion/internal/bootstrap"
	"github.com/yanqian/health-companion/internal/domain/advisor"
	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/domain/billing"
	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	"github.com/yanqian/health-companion/internal/infra/config"
	httpiface "github.com/yanqian/health-companion/internal/interface/http"
	"github.com/yanqian/health-companion/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideAdvisorConfig,
		provideBillingConfig,
		provideAdvisorChatClient,
		provideWeatherProvider,
		provideWeatherService,
		provideBillingGateway,
		providePostgresPool,
		provideUserRepository,
		provideLifestyleRepository,
		providePaymentRepository,
		provideTokenStore,
		provideProfileWriter,
		provideHistorySource,
		provideBillingAccounts,
		lifestyle.NewService,
		auth.NewService,
		advisor.NewService,
		billing.NewService,
		httpiface.NewAuthHandler,
		httpiface.NewLifestyleHandler,
		httpiface.NewHealthHandler,
		httpiface.NewBillingHandler,
		provideHandlers,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
