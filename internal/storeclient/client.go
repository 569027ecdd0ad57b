// Package storeclient реализует HTTP-клиент внешнего магазина подписок:
// каталог планов, инициация покупки, восстановление и авторитетное
// состояние подписки. Ошибки магазина приводятся к кодам entitlement.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
)

// Client клиент API магазина подписок.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New создаёт клиент магазина подписок.
func New(apiURL, apiKey string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и декодирует успешный ответ в result.
// Ошибочный ответ магазина превращается в типизированную ошибку.
func (c *Client) do(req *http.Request, result any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entitlement.StoreError{
			Code:    entitlement.CodeNetworkError,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.decodeError(resp)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode store response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error.Code == "" {
		return &entitlement.StoreError{
			Code:    entitlement.CodeStoreError,
			Message: "unexpected status: " + resp.Status,
		}
	}

	switch apiErr.Error.Code {
	case "purchase_cancelled":
		return entitlement.ErrCancelled
	case "nothing_to_restore":
		return entitlement.ErrNoPurchases
	case "product_not_found":
		return &entitlement.StoreError{Code: entitlement.CodeProductNotFound, Message: apiErr.Error.Message}
	case "payment_pending":
		return &entitlement.StoreError{Code: entitlement.CodePaymentPending, Message: apiErr.Error.Message}
	case "payment_declined":
		return &entitlement.StoreError{Code: entitlement.CodePaymentDeclined, Message: apiErr.Error.Message}
	case "already_owned":
		return &entitlement.StoreError{Code: entitlement.CodeAlreadyOwned, Message: apiErr.Error.Message}
	case "store_error":
		return &entitlement.StoreError{Code: entitlement.CodeStoreError, Message: apiErr.Error.Message}
	default:
		// незнакомый код — классифицируем по тексту сообщения
		return &entitlement.StoreError{
			Code:    entitlement.ClassifyMessage(apiErr.Error.Message),
			Message: apiErr.Error.Message,
		}
	}
}

// Products возвращает каталог планов магазина.
func (c *Client) Products(ctx context.Context) ([]entitlement.Product, error) {
	const op = "storeclient.Products"

	req, err := c.newRequest(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var body productsResponse
	if err := c.do(req, &body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]entitlement.Product, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, entitlement.Product{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			DisplayPrice:    p.DisplayPrice,
			PriceMicros:     p.PriceMicros,
			CurrencyCode:    p.CurrencyCode,
			HasFreeTrial:    p.HasFreeTrial,
			FreeTrialPeriod: p.FreeTrialPeriod,
		})
	}
	return products, nil
}

// Purchase инициирует покупку плана и дожидается подтверждения магазина.
func (c *Client) Purchase(ctx context.Context, planID string) (*entitlement.SubscriptionInfo, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/purchases", purchaseRequest{PlanID: planID})
	if err != nil {
		return nil, err
	}

	var body subscriptionResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return body.toInfo(), nil
}

// Restore запрашивает ранее сделанные покупки аккаунта.
func (c *Client) Restore(ctx context.Context) (*entitlement.SubscriptionInfo, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/restore", nil)
	if err != nil {
		return nil, err
	}

	var body subscriptionResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return body.toInfo(), nil
}

// Entitlement возвращает авторитетное состояние подписки аккаунта.
func (c *Client) Entitlement(ctx context.Context) (*entitlement.SubscriptionInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/entitlement", nil)
	if err != nil {
		return nil, err
	}

	var body subscriptionResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return body.toInfo(), nil
}
