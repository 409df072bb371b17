// Package services wires the application dependencies together.
package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_sale"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_bundles"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/repo"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/add_discount"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/add_sale_products"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/create_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/delete_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_bundle_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_discount"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_sale_products"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_discount"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
	transport "github.com/light-bringer/sellerhub-service/internal/transport/http"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

// ServiceOptions holds all application dependencies.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Handlers      transport.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, log *logger.Logger) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	productRepo := repo.NewProductRepo(spannerClient, clk)
	bundleRepo := repo.NewBundleRepo(spannerClient, clk)
	discountRepo := repo.NewDiscountRepo(spannerClient)
	categoryRepo := repo.NewCategoryRepo(spannerClient, clk)
	saleRepo := repo.NewSaleRepo(spannerClient, clk)
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	readModel := repo.NewReadModel(spannerClient, discountRepo, clk)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	productHandler := transport.NewProductHandler(
		create_product.NewInteractor(productRepo, categoryRepo, outboxRepo, comm, clk),
		update_product.NewInteractor(productRepo, bundleRepo, discountRepo, categoryRepo, comm, clk),
		delete_product.NewInteractor(productRepo, bundleRepo, discountRepo, categoryRepo, outboxRepo, comm, clk, log),
		get_product.NewQuery(readModel),
		list_products.NewQuery(readModel),
	)

	bundleHandler := transport.NewBundleHandler(
		create_bundle.NewInteractor(bundleRepo, productRepo, outboxRepo, comm, clk),
		update_bundle.NewInteractor(bundleRepo, productRepo, discountRepo, comm, clk),
		delete_bundle.NewInteractor(bundleRepo, productRepo, discountRepo, outboxRepo, comm, clk),
		remove_bundle_product.NewInteractor(bundleRepo, productRepo, discountRepo, comm, clk, log),
		get_bundle.NewQuery(readModel),
		list_bundles.NewQuery(readModel),
	)

	discountHandler := transport.NewDiscountHandler(
		add_discount.NewInteractor(discountRepo, productRepo, bundleRepo, comm, clk),
		update_discount.NewInteractor(discountRepo, productRepo, bundleRepo, comm, clk),
		remove_discount.NewInteractor(discountRepo, productRepo, bundleRepo, comm, clk),
	)

	saleHandler := transport.NewSaleHandler(
		add_sale_products.NewInteractor(saleRepo, productRepo, bundleRepo, comm, clk),
		remove_sale_products.NewInteractor(saleRepo, productRepo, bundleRepo, comm, clk, log),
		get_sale.NewQuery(readModel),
	)

	eventsHandler := transport.NewEventsHandler(list_events.NewQuery(eventsReadModel))

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Handlers: transport.Handlers{
			Products:  productHandler,
			Bundles:   bundleHandler,
			Discounts: discountHandler,
			Sales:     saleHandler,
			Events:    eventsHandler,
		},
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
