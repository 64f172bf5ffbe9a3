// Package backend talks to the lab backend REST API. Every durable write
// (orders, notification flags, cabinets, certificates) goes through here;
// the agent itself keeps no persistent state.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mysmilelab/labsync/internal/domain/errors"
	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/session"
)

// APIError is a non-2xx backend response converted into a status/message pair.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

// AuthInfo mirrors a platform status endpoint payload.
type AuthInfo struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	// ExpiresInSeconds is the remaining token lifetime, when reported.
	ExpiresInSeconds *int64 `json:"expiresIn,omitempty"`
}

// Client exposes the backend operations the agent consumes.
type Client interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	TriggerSync(ctx context.Context, p model.Platform) (int, error)
	AuthStatus(ctx context.Context, p model.Platform) (*AuthInfo, error)
	RefreshAuth(ctx context.Context, p model.Platform) error
	PlatformConnections(ctx context.Context) ([]model.PlatformConnection, error)

	MarkNotified(ctx context.Context, orderID int64) error
	MarkNewOrderNotified(ctx context.Context, orderID int64) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	SetOrderSeen(ctx context.Context, orderID int64, seen bool) error
	UpdateOrderComment(ctx context.Context, orderID int64, comment string) error

	ListCabinets(ctx context.Context) ([]model.Cabinet, error)
	GetCabinet(ctx context.Context, id int64) (*model.Cabinet, error)
	CreateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error)
	UpdateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error)
	DeleteCabinet(ctx context.Context, id int64) error

	ListCertificates(ctx context.Context) ([]model.Certificate, error)
	CertificateForOrder(ctx context.Context, orderID int64) (*model.Certificate, error)
	CreateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error)
	UpdateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error)
	DeleteCertificate(ctx context.Context, id int64) error
}

// HTTPClient implements Client over the backend REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	sessions   *session.Source
	logger     *slog.Logger
}

// NewHTTPClient creates a backend client with a default timeout.
func NewHTTPClient(baseURL string, sessions *session.Source, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	return &HTTPClient{
		baseURL:  parsed,
		sessions: sessions,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// do executes one backend request. A missing bearer token aborts before any
// network activity. Non-2xx responses become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, relPath string, query url.Values, in, out any) error {
	sess := c.sessions.Current()
	if !sess.Valid() {
		return domainErrors.ErrMissingToken
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, relPath)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) errorFrom(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	message := resp.Status
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Message != "":
			message = payload.Message
		case payload.Error != "":
			message = payload.Error
		}
	}
	c.logger.Error("backend request failed",
		slog.String("url", resp.Request.URL.Path),
		slog.Int("status", resp.StatusCode),
	)
	if resp.StatusCode == http.StatusNotFound {
		return domainErrors.ErrNotFound
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// ListOrders fetches the full order list.
func (c *HTTPClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/public/commandes", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// syncResponse tolerates both field names the backend uses for the number of
// orders saved by a sync.
type syncResponse struct {
	SavedCount *int `json:"savedCount"`
	Count      *int `json:"count"`
}

func (r syncResponse) saved() int {
	if r.SavedCount != nil {
		return *r.SavedCount
	}
	if r.Count != nil {
		return *r.Count
	}
	return 0
}

// TriggerSync asks the backend to pull new orders from one platform and
// returns how many were saved. Endpoint and method come from the platform
// dispatch table.
func (c *HTTPClient) TriggerSync(ctx context.Context, p model.Platform) (int, error) {
	route, ok := model.RouteFor(p)
	if !ok || !route.Syncable {
		return 0, domainErrors.ErrPlatformNotSyncable
	}

	var query url.Values
	if route.Paginated {
		query = url.Values{}
		query.Set("page", "1")
		query.Set("size", "100")
	}

	var resp syncResponse
	if err := c.do(ctx, route.SyncMethod, route.SyncPath, query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.saved(), nil
}

// AuthStatus queries the connection status of one platform.
func (c *HTTPClient) AuthStatus(ctx context.Context, p model.Platform) (*AuthInfo, error) {
	route, ok := model.RouteFor(p)
	if !ok {
		return nil, fmt.Errorf("platform %s has no status endpoint", p)
	}
	var info AuthInfo
	if err := c.do(ctx, http.MethodGet, route.StatusPath, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RefreshAuth triggers a proactive token refresh for platforms that support it.
func (c *HTTPClient) RefreshAuth(ctx context.Context, p model.Platform) error {
	route, ok := model.RouteFor(p)
	if !ok || !route.Refreshable {
		return fmt.Errorf("platform %s does not support token refresh", p)
	}
	return c.do(ctx, http.MethodPost, route.RefreshPath, nil, nil, nil)
}

// PlatformConnections lists the platforms the lab has configured.
func (c *HTTPClient) PlatformConnections(ctx context.Context) ([]model.PlatformConnection, error) {
	var conns []model.PlatformConnection
	if err := c.do(ctx, http.MethodGet, "/platforms/user", nil, nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// MarkNotified records that the general notification was sent for an order.
func (c *HTTPClient) MarkNotified(ctx context.Context, orderID int64) error {
	return c.do(ctx, http.MethodPost, orderPath(orderID, "notification/sent"), nil, nil, nil)
}

// MarkNewOrderNotified records that the internal "new order" alert was sent.
func (c *HTTPClient) MarkNewOrderNotified(ctx context.Context, orderID int64) error {
	return c.do(ctx, http.MethodPost, orderPath(orderID, "commande-notification/sent"), nil, nil, nil)
}

// UpdateOrderStatus moves an order through its lifecycle.
func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	body := map[string]string{"statut": string(status)}
	return c.do(ctx, http.MethodPut, orderPath(orderID, "statut"), nil, body, nil)
}

// SetOrderSeen toggles the read flag.
func (c *HTTPClient) SetOrderSeen(ctx context.Context, orderID int64, seen bool) error {
	body := map[string]bool{"vu": seen}
	return c.do(ctx, http.MethodPut, orderPath(orderID, "vu"), nil, body, nil)
}

// UpdateOrderComment replaces the free-text comment.
func (c *HTTPClient) UpdateOrderComment(ctx context.Context, orderID int64, comment string) error {
	body := map[string]string{"commentaire": comment}
	return c.do(ctx, http.MethodPut, orderPath(orderID, "commentaire"), nil, body, nil)
}

func orderPath(orderID int64, suffix string) string {
	return path.Join("/public/commandes", strconv.FormatInt(orderID, 10), suffix)
}

// ListCabinets returns every cabinet.
func (c *HTTPClient) ListCabinets(ctx context.Context) ([]model.Cabinet, error) {
	var cabinets []model.Cabinet
	if err := c.do(ctx, http.MethodGet, "/cabinet", nil, nil, &cabinets); err != nil {
		return nil, err
	}
	return cabinets, nil
}

// GetCabinet fetches one cabinet by id.
func (c *HTTPClient) GetCabinet(ctx context.Context, id int64) (*model.Cabinet, error) {
	var cab model.Cabinet
	if err := c.do(ctx, http.MethodGet, cabinetPath(id), nil, nil, &cab); err != nil {
		return nil, err
	}
	return &cab, nil
}

// CreateCabinet registers a new cabinet.
func (c *HTTPClient) CreateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	var created model.Cabinet
	if err := c.do(ctx, http.MethodPost, "/cabinet", nil, cab, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCabinet replaces an existing cabinet.
func (c *HTTPClient) UpdateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	var updated model.Cabinet
	if err := c.do(ctx, http.MethodPut, cabinetPath(cab.ID), nil, cab, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCabinet removes a cabinet.
func (c *HTTPClient) DeleteCabinet(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, cabinetPath(id), nil, nil, nil)
}

func cabinetPath(id int64) string {
	return path.Join("/cabinet", strconv.FormatInt(id, 10))
}

// ListCertificates returns every conformity certificate.
func (c *HTTPClient) ListCertificates(ctx context.Context) ([]model.Certificate, error) {
	var certs []model.Certificate
	if err := c.do(ctx, http.MethodGet, "/certificats", nil, nil, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

// CertificateForOrder fetches the certificate attached to an order, if any.
func (c *HTTPClient) CertificateForOrder(ctx context.Context, orderID int64) (*model.Certificate, error) {
	var cert model.Certificate
	p := path.Join("/certificats/commande", strconv.FormatInt(orderID, 10))
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

// CreateCertificate stores a new certificate.
func (c *HTTPClient) CreateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	var created model.Certificate
	if err := c.do(ctx, http.MethodPost, "/certificats", nil, cert, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCertificate replaces an existing certificate.
func (c *HTTPClient) UpdateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	var updated model.Certificate
	if err := c.do(ctx, http.MethodPut, certificatePath(cert.ID), nil, cert, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCertificate removes a certificate.
func (c *HTTPClient) DeleteCertificate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, certificatePath(id), nil, nil, nil)
}

func certificatePath(id int64) string {
	return path.Join("/certificats", strconv.FormatInt(id, 10))
}
