package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// RFQRepository - интерфейс для работы с RFQ на стороне бэкенда закупок.
type RFQRepository interface {
	GetRFQ(ctx context.Context, rfqId string) (*models.RFQEvent, error)
	GetComparison(ctx context.Context, rfqId string) (*models.ComparisonData, error)
	GetItemBuckets(ctx context.Context, rfqId string) (*models.ItemBuckets, error)
	SubmitCollectiveCounterOffer(ctx context.Context, req models.CounterOfferRequest) error
	SubmitCollectiveArcApproval(ctx context.Context, req models.ArcApprovalRequest) error
}

// HTTPRFQRepository - реализация RFQRepository поверх REST API бэкенда.
type HTTPRFQRepository struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRFQRepository создаёт новый экземпляр HTTPRFQRepository.
func NewHTTPRFQRepository(baseURL string, timeout time.Duration) *HTTPRFQRepository {
	return &HTTPRFQRepository{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// GetRFQ возвращает RFQ по идентификатору.
func (r *HTTPRFQRepository) GetRFQ(ctx context.Context, rfqId string) (*models.RFQEvent, error) {
	var dto rfqDetailDTO
	if err := r.getJSON(ctx, "/rfq/"+url.PathEscape(rfqId), &dto); err != nil {
		return nil, err
	}
	return dto.toModel()
}

// GetComparison возвращает предложения поставщиков для сравнения.
func (r *HTTPRFQRepository) GetComparison(ctx context.Context, rfqId string) (*models.ComparisonData, error) {
	var dto comparisonDTO
	if err := r.getJSON(ctx, "/rfq/"+url.PathEscape(rfqId)+"/comparison", &dto); err != nil {
		return nil, err
	}
	return dto.toModel()
}

// GetItemBuckets возвращает позиции RFQ, разложенные по вкладкам.
func (r *HTTPRFQRepository) GetItemBuckets(ctx context.Context, rfqId string) (*models.ItemBuckets, error) {
	var dto itemBucketsDTO
	if err := r.getJSON(ctx, "/rfq/"+url.PathEscape(rfqId)+"/items", &dto); err != nil {
		return nil, err
	}
	return dto.toModel()
}

// SubmitCollectiveCounterOffer отправляет пакет встречных предложений.
func (r *HTTPRFQRepository) SubmitCollectiveCounterOffer(ctx context.Context, req models.CounterOfferRequest) error {
	return r.postJSON(ctx, "/rfq/counter-offers/collective", req)
}

// SubmitCollectiveArcApproval отправляет пакет ARC-согласований.
func (r *HTTPRFQRepository) SubmitCollectiveArcApproval(ctx context.Context, req models.ArcApprovalRequest) error {
	return r.postJSON(ctx, "/rfq/arc-approvals/collective", req)
}

func (r *HTTPRFQRepository) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeBackendError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Resource: strings.TrimPrefix(path, "/"), Field: "body", Value: err.Error()}
	}
	return nil
}

func (r *HTTPRFQRepository) postJSON(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeBackendError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func decodeBackendError(resp *http.Response) error {
	backendErr := &BackendError{StatusCode: resp.StatusCode}
	var dto backendErrorDTO
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&dto); err == nil {
		backendErr.Message = dto.Message
	}
	return backendErr
}

// BackendMessage извлекает сообщение бэкенда из цепочки ошибок.
func BackendMessage(err error) (string, bool) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message, true
	}
	return "", false
}
