//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	pacttest "github.com/orderdesk/orderdesk/test/pact"
)

var timestampMatcher = matchers.Regex("2026-03-01T09:00:00Z", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}.*`)

func orderBodyMatcher() matchers.Map {
	return matchers.Map{
		"id":               matchers.Like(pacttest.ExistingOrderID),
		"orderNumber":      matchers.Like("1001"),
		"customerName":     matchers.Like("Acme Traders"),
		"status":           matchers.Term("pending", "pending|dc|invoice|dispatched"),
		"isPaid":           matchers.Like(false),
		"paymentCondition": matchers.Term("net-15", "immediate|net-15|net-30"),
		"priority":         matchers.Term("medium", "high|medium|low"),
		"items": matchers.ArrayMinLike(matchers.Map{
			"productId": matchers.Like(pacttest.ExistingProduct),
			"name":      matchers.Like("Steel rod"),
			"quantity":  matchers.Like(2),
			"unitPrice": matchers.Like(2500),
		}, 1),
		"total":     matchers.Like(5000),
		"createdAt": timestampMatcher,
	}
}

func productBodyMatcher() matchers.Map {
	return matchers.Map{
		"id":        matchers.Like(pacttest.ExistingProduct),
		"name":      matchers.Like("Steel rod"),
		"stock":     matchers.Like(12),
		"unitPrice": matchers.Like(2500),
		"updatedAt": timestampMatcher,
	}
}

func TestFulfillmentContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to list orders").
		WithRequest("GET", "/api/orders").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(orderBodyMatcher(), 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to mark an order paid").
		WithRequest("POST", fmt.Sprintf("/api/orders/%s/payment", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher())
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a patch against a missing order").
		WithRequest("PATCH", fmt.Sprintf("/api/orders/%s", pacttest.MissingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"message": matchers.Like("order not found")})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductsSeeded).
		UponReceiving("a request to fetch a product").
		WithRequest("GET", fmt.Sprintf("/api/products/%s", pacttest.ExistingProduct)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher())
		})

	pact.AddInteraction().
		Given(pacttest.StateProductsSeeded).
		UponReceiving("a request to decrement product stock").
		WithRequest("POST", fmt.Sprintf("/api/products/%s/stock", pacttest.ExistingProduct), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"delta": matchers.Like(-2)})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher())
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := fulfillment.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		orders, err := client.ListOrders(ctx, fulfillment.OrderFilter{})
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		if len(orders) == 0 {
			return fmt.Errorf("expected at least one order")
		}

		paid, err := client.MarkOrderPaid(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if paid.ID == "" {
			return fmt.Errorf("expected the paid order echo to carry an id")
		}

		if _, err := client.UpdateOrder(ctx, pacttest.MissingOrderID, fulfillment.OrderPatchDTO{}); !errors.Is(err, fulfillment.ErrNotFound) {
			return fmt.Errorf("expected 404 to classify as not found, got %v", err)
		}

		product, err := client.GetProduct(ctx, pacttest.ExistingProduct)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ID == "" {
			return fmt.Errorf("expected the product echo to carry an id")
		}

		if _, err := client.AdjustStock(ctx, pacttest.ExistingProduct, -2); err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}

		return nil
	})
	require.NoError(t, err)
}
