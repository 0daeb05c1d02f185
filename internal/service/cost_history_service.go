package service

import (
	"context"
	"fmt"
	"time"

	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
)

// CostHistoryService manages the append-only price history behind
// effective-dated cost resolution.
type CostHistoryService interface {
	Add(ctx context.Context, itemID uuid.UUID, req dto.CreateCostHistoryRequest) (*dto.CostHistoryResponse, error)
	List(ctx context.Context, itemID uuid.UUID, page, limit int) (*dto.CostHistoryListResponse, error)
	Delete(ctx context.Context, entryID uuid.UUID) error
}

type costHistoryService struct {
	repo repository.CostHistoryRepository
}

func NewCostHistoryService(repo repository.CostHistoryRepository) CostHistoryService {
	return &costHistoryService{repo: repo}
}

func (s *costHistoryService) Add(ctx context.Context, itemID uuid.UUID, req dto.CreateCostHistoryRequest) (*dto.CostHistoryResponse, error) {
	effective, err := parseEffectiveDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	entry := &model.CostHistoryEntry{
		ItemID:        itemID,
		CostPrice:     req.CostPrice,
		EffectiveDate: effective,
		SupplierName:  req.SupplierName,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return historyResponse(entry), nil
}

func (s *costHistoryService) List(ctx context.Context, itemID uuid.UUID, page, limit int) (*dto.CostHistoryListResponse, error) {
	entries, total, err := s.repo.ListByItemPaged(ctx, itemID, page, limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CostHistoryResponse, len(entries))
	for i := range entries {
		data[i] = *historyResponse(&entries[i])
	}
	return &dto.CostHistoryListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *costHistoryService) Delete(ctx context.Context, entryID uuid.UUID) error {
	return s.repo.Delete(ctx, entryID)
}

func historyResponse(e *model.CostHistoryEntry) *dto.CostHistoryResponse {
	return &dto.CostHistoryResponse{
		ID:            e.ID.String(),
		ItemID:        e.ItemID.String(),
		CostPrice:     e.CostPrice,
		EffectiveDate: e.EffectiveDate.UTC().Format(time.RFC3339),
		SupplierName:  e.SupplierName,
		Quantity:      e.Quantity,
		Notes:         e.Notes,
	}
}

// parseEffectiveDate accepts RFC 3339 or a bare calendar date, which is what
// supplier quote imports usually carry.
func parseEffectiveDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid effective date %q: want RFC 3339 or YYYY-MM-DD", raw)
}
