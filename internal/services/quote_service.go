package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
	"golang.org/x/sync/errgroup"
)

var ErrNothingToArchive = errors.New("no entered quotes to archive")

type QuoteRepository interface {
	ListActive(ctx context.Context) ([]models.QuoteSummary, error)
	FindByID(ctx context.Context, quoteID string) (models.Quote, error)
	ListAppliances(ctx context.Context, quoteID string) ([]models.ApplianceDetail, error)
	ListFiles(ctx context.Context, quoteID string) ([]models.QuoteFile, error)
	FindFile(ctx context.Context, quoteID string, fileID uint) (models.QuoteFile, error)
	SetEntered(ctx context.Context, quoteID string, entered bool) error
	ArchiveEntered(ctx context.Context) (int64, error)
}

type QuoteDetail struct {
	Quote      models.Quote
	Appliances []models.ApplianceDetail
	Files      []models.QuoteFile
}

type ListStats struct {
	Total    int
	Today    int
	Filtered int
	Entered  int
}

type QuoteService struct {
	quotes QuoteRepository
}

func NewQuoteService(quotes QuoteRepository) *QuoteService {
	return &QuoteService{quotes: quotes}
}

func (service *QuoteService) ListActive(ctx context.Context) ([]models.QuoteSummary, error) {
	summaries, err := service.quotes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return summaries, nil
}

// LoadDetail runs the quote, appliance and file reads concurrently and
// returns only when all three succeeded.
func (service *QuoteService) LoadDetail(ctx context.Context, quoteID string) (QuoteDetail, error) {
	var detail QuoteDetail
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		quote, err := service.quotes.FindByID(groupCtx, quoteID)
		if err != nil {
			return fmt.Errorf("load quote: %w", err)
		}
		detail.Quote = quote
		return nil
	})
	group.Go(func() error {
		appliances, err := service.quotes.ListAppliances(groupCtx, quoteID)
		if err != nil {
			return fmt.Errorf("load appliances: %w", err)
		}
		detail.Appliances = appliances
		return nil
	})
	group.Go(func() error {
		files, err := service.quotes.ListFiles(groupCtx, quoteID)
		if err != nil {
			return fmt.Errorf("load files: %w", err)
		}
		detail.Files = files
		return nil
	})

	if err := group.Wait(); err != nil {
		return QuoteDetail{}, err
	}
	if err := ctx.Err(); err != nil {
		return QuoteDetail{}, err
	}
	return detail, nil
}

// ToggleEntered flips the displayed value and returns what should be shown
// afterwards, rolled back on failure.
func (service *QuoteService) ToggleEntered(ctx context.Context, quoteID string, current bool) (bool, error) {
	toggle := NewEnteredToggle(current)
	return toggle.Flip(ctx, func(ctx context.Context, value bool) error {
		return service.quotes.SetEntered(ctx, quoteID, value)
	})
}

// ArchiveEntered archives in one set-based update when the fetched list holds
// at least one entered quote. The update matches the live table, so rows that
// became entered after the fetch are archived too.
func (service *QuoteService) ArchiveEntered(ctx context.Context, fetched []models.QuoteSummary) (int64, error) {
	if len(EnteredPending(fetched)) == 0 {
		return 0, ErrNothingToArchive
	}
	return service.quotes.ArchiveEntered(ctx)
}

func (service *QuoteService) FindFile(ctx context.Context, quoteID string, fileID uint) (models.QuoteFile, error) {
	return service.quotes.FindFile(ctx, quoteID, fileID)
}

func ComputeListStats(all []models.QuoteSummary, filtered []models.QuoteSummary, now time.Time, location *time.Location) ListStats {
	if location == nil {
		location = time.UTC
	}
	localNow := now.In(location)
	year, month, day := localNow.Date()

	stats := ListStats{Total: len(all), Filtered: len(filtered)}
	for _, quote := range all {
		createdYear, createdMonth, createdDay := quote.CreatedAt.In(location).Date()
		if createdYear == year && createdMonth == month && createdDay == day {
			stats.Today++
		}
	}
	stats.Entered = len(EnteredPending(all))
	return stats
}
