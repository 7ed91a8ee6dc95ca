package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/proappliance/quoteadmin/internal/models"
	"gorm.io/gorm"
)

var (
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrQuoteAmbiguous = errors.New("quote id matched more than one row")
	ErrFileNotFound   = errors.New("quote file not found")
)

type QuoteRepository struct {
	database *gorm.DB
}

func NewQuoteRepository(database *gorm.DB) *QuoteRepository {
	return &QuoteRepository{database: database}
}

// ListActive returns every non-archived quote, newest first.
func (repo *QuoteRepository) ListActive(ctx context.Context) ([]models.QuoteSummary, error) {
	summaries := make([]models.QuoteSummary, 0)
	err := repo.database.WithContext(ctx).
		Table("quotes").
		Select(
			"quotes.id, quotes.customer_name, quotes.email, quotes.phone_primary, quotes.created_at, quotes.entered_status, quotes.archived, " +
				"(SELECT COUNT(*) FROM appliance_details WHERE appliance_details.quote_id = quotes.id) AS appliance_count",
		).
		Where("quotes.archived = ?", false).
		Order("quotes.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindByID requires exactly one matching row.
func (repo *QuoteRepository) FindByID(ctx context.Context, quoteID string) (models.Quote, error) {
	rows := make([]models.Quote, 0, 2)
	if err := repo.database.WithContext(ctx).Where("id = ?", quoteID).Limit(2).Find(&rows).Error; err != nil {
		return models.Quote{}, err
	}
	switch len(rows) {
	case 0:
		return models.Quote{}, ErrQuoteNotFound
	case 1:
		return rows[0], nil
	default:
		return models.Quote{}, ErrQuoteAmbiguous
	}
}

func (repo *QuoteRepository) ListAppliances(ctx context.Context, quoteID string) ([]models.ApplianceDetail, error) {
	appliances := make([]models.ApplianceDetail, 0)
	if err := repo.database.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("id ASC").
		Find(&appliances).Error; err != nil {
		return nil, err
	}
	return appliances, nil
}

func (repo *QuoteRepository) ListFiles(ctx context.Context, quoteID string) ([]models.QuoteFile, error) {
	files := make([]models.QuoteFile, 0)
	if err := repo.database.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("upload_order ASC").
		Order("id ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (repo *QuoteRepository) FindFile(ctx context.Context, quoteID string, fileID uint) (models.QuoteFile, error) {
	var file models.QuoteFile
	err := repo.database.WithContext(ctx).
		Where("id = ? AND quote_id = ?", fileID, quoteID).
		First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.QuoteFile{}, ErrFileNotFound
	}
	if err != nil {
		return models.QuoteFile{}, err
	}
	return file, nil
}

func (repo *QuoteRepository) SetEntered(ctx context.Context, quoteID string, entered bool) error {
	result := repo.database.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Update("entered_status", entered)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

// ArchiveEntered flags every entered, still active quote as archived in a
// single statement and reports how many rows changed.
func (repo *QuoteRepository) ArchiveEntered(ctx context.Context) (int64, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.Quote{}).
		Where("entered_status = ? AND archived = ?", true, false).
		Update("archived", true)
	if result.Error != nil {
		return 0, fmt.Errorf("archive entered quotes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CreateQuote inserts the quote and leaves the generated id on it.
func (repo *QuoteRepository) CreateQuote(ctx context.Context, quote *models.Quote) error {
	return repo.database.WithContext(ctx).Create(quote).Error
}

func (repo *QuoteRepository) CreateAppliance(ctx context.Context, appliance *models.ApplianceDetail) error {
	return repo.database.WithContext(ctx).Create(appliance).Error
}

func (repo *QuoteRepository) CreateFile(ctx context.Context, file *models.QuoteFile) error {
	return repo.database.WithContext(ctx).Create(file).Error
}
