package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	"github.com/luxuryconcept/storefront-backend/pkg/db"
	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
	"github.com/luxuryconcept/storefront-backend/pkg/enums"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	"github.com/luxuryconcept/storefront-backend/pkg/metrics"
)

// Service places orders and lists them for administrative review.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (int64, error)
	ListOrdersWithSummary(ctx context.Context) ([]OrderSummary, error)
}

type service struct {
	repo        *Repository
	productRepo *catalog.Repository
	dbClient    *db.Client
	logg        *logger.Logger
	metrics     *metrics.StoreMetrics
}

// NewService constructs an order service. metrics may be nil.
func NewService(repo *Repository, productRepo *catalog.Repository, dbClient *db.Client, logg *logger.Logger, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:        repo,
		productRepo: productRepo,
		dbClient:    dbClient,
		logg:        logg,
		metrics:     m,
	}, nil
}

// PlaceOrder writes the order header and every line item in one transaction.
// Item prices are snapshotted from the catalog and the total is recomputed;
// a stale client price or total rejects the order before anything persists.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (int64, error) {
	start := time.Now()
	input.Customer = normalizeCustomer(input.Customer)
	if err := validatePlaceOrder(input); err != nil {
		s.metrics.ObserveOrder(metrics.ResultRejected, len(input.Items), time.Since(start))
		return 0, err
	}

	var orderID int64
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		products, err := s.productRepo.WithTx(tx).FindByIDs(ctx, productIDs(input.Items))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order products")
		}

		items, total, err := priceItems(input.Items, products)
		if err != nil {
			return err
		}
		if !total.Equal(input.TotalAmount) {
			return pkgerrors.New(pkgerrors.CodeValidation, "total amount does not match current prices").
				WithDetails(map[string]any{"total_amount": total.StringFixed(2)})
		}

		repo := s.repo.WithTx(tx)
		order := &models.Order{
			CustomerName:    input.Customer.Name,
			CustomerEmail:   input.Customer.Email,
			CustomerPhone:   input.Customer.Phone,
			CustomerAddress: input.Customer.Address,
			TotalAmount:     total,
			Status:          enums.OrderStatusPending,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order items")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		result := metrics.ResultFailure
		if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			result = metrics.ResultRejected
		}
		s.metrics.ObserveOrder(result, len(input.Items), time.Since(start))
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to place order")
		}
		return 0, err
	}

	s.metrics.ObserveOrder(metrics.ResultSuccess, len(input.Items), time.Since(start))
	if s.logg != nil {
		logCtx := s.logg.WithFields(s.logg.WithOrderID(ctx, orderID), map[string]any{"items": len(input.Items)})
		s.logg.Info(logCtx, "order.placed")
	}
	return orderID, nil
}

// ListOrdersWithSummary returns every order that has at least one item whose
// product still exists, newest first, with items rendered as "Name (xN)".
func (s *service) ListOrdersWithSummary(ctx context.Context) ([]OrderSummary, error) {
	rows, err := s.repo.ListSummaryRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Failed to fetch orders")
	}

	out := []OrderSummary{}
	parts := map[int64][]string{}
	for _, row := range rows {
		if _, seen := parts[row.OrderID]; !seen {
			out = append(out, OrderSummary{
				ID:              row.OrderID,
				CustomerName:    row.CustomerName,
				CustomerEmail:   row.CustomerEmail,
				CustomerPhone:   row.CustomerPhone,
				CustomerAddress: row.CustomerAddress,
				TotalAmount:     row.TotalAmount,
				Status:          row.Status,
				CreatedAt:       row.CreatedAt,
			})
		}
		parts[row.OrderID] = append(parts[row.OrderID], fmt.Sprintf("%s (x%d)", row.ProductName, row.Quantity))
	}
	for i := range out {
		out[i].ItemsSummary = strings.Join(parts[out[i].ID], ", ")
	}
	return out, nil
}

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

func validatePlaceOrder(in PlaceOrderInput) error {
	details := map[string]any{}
	if in.Customer.Name == "" {
		details["customer_name"] = "is required"
	}
	if in.Customer.Email == "" {
		details["customer_email"] = "is required"
	}
	if len(in.Items) == 0 {
		details["items"] = "at least one item is required"
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			details[fmt.Sprintf("items[%d].product_id", i)] = "must be a positive id"
		}
		if item.Quantity < 1 {
			details[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order").WithDetails(details)
	}
	return nil
}

func productIDs(items []LineItemInput) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// priceItems snapshots the catalog price onto each item and sums the order.
func priceItems(inputs []LineItemInput, products map[int64]models.Product) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	total := decimal.Zero
	for i, in := range inputs {
		product, ok := products[in.ProductID]
		if !ok {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "order references an unknown product").
				WithDetails(map[string]any{fmt.Sprintf("items[%d].product_id", i): in.ProductID})
		}
		if in.UnitPrice != nil && !in.UnitPrice.Equal(product.Price) {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item price does not match current price").
				WithDetails(map[string]any{
					fmt.Sprintf("items[%d].unit_price", i): product.Price.StringFixed(2),
				})
		}
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))))
	}
	return items, total, nil
}
