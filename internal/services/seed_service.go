package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
)

const seedMaxAgeDays = 30

type SeedRepository interface {
	CreateQuote(ctx context.Context, quote *models.Quote) error
	CreateAppliance(ctx context.Context, appliance *models.ApplianceDetail) error
}

// SeedResult reports one attempted record. Err is nil on success; QuoteID is
// set whenever the quote row itself was inserted.
type SeedResult struct {
	CustomerName string
	QuoteID      string
	Appliances   int
	Err          error
}

type SeedService struct {
	quotes  SeedRepository
	now     func() time.Time
	daysAgo func(n int) int
}

func NewSeedService(quotes SeedRepository) *SeedService {
	return &SeedService{
		quotes:  quotes,
		now:     time.Now,
		daysAgo: rand.IntN,
	}
}

// Seed inserts every fixed record, one at a time and without a transaction.
// A failing record is logged and reported; the remaining ones are still tried.
func (service *SeedService) Seed(ctx context.Context) []SeedResult {
	records := seedRecords()
	results := make([]SeedResult, 0, len(records))

	for _, record := range records {
		result := service.seedOne(ctx, record)
		if result.Err != nil {
			log.Printf("seed quote for %s failed: %v", result.CustomerName, result.Err)
		}
		results = append(results, result)
	}
	return results
}

func (service *SeedService) seedOne(ctx context.Context, record seedRecord) SeedResult {
	quote := record.Quote
	result := SeedResult{CustomerName: quote.CustomerName}

	quote.ID = ""
	quote.CreatedAt = service.now().UTC().AddDate(0, 0, -service.daysAgo(seedMaxAgeDays))
	if err := service.quotes.CreateQuote(ctx, &quote); err != nil {
		result.Err = fmt.Errorf("insert quote: %w", err)
		return result
	}
	result.QuoteID = quote.ID

	for _, item := range record.Appliances {
		appliance := models.ApplianceDetail{
			QuoteID:       quote.ID,
			ApplianceType: item.Type,
			Brand:         item.Brand,
			Model:         item.Model,
			Specifics:     item.Specifics,
		}
		if err := service.quotes.CreateAppliance(ctx, &appliance); err != nil {
			result.Err = fmt.Errorf("insert appliance %s: %w", item.Type, err)
			return result
		}
		result.Appliances++
	}
	return result
}

func CountSeeded(results []SeedResult) int {
	seeded := 0
	for _, result := range results {
		if result.Err == nil {
			seeded++
		}
	}
	return seeded
}
