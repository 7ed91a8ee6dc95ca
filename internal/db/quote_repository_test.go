package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
)

func newQuoteRepositoryForTest(t *testing.T) *QuoteRepository {
	t.Helper()
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "quoteadmin-quotes.db"))
	return NewQuoteRepository(database)
}

func mustCreateQuote(t *testing.T, repo *QuoteRepository, quote models.Quote) models.Quote {
	t.Helper()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	if err := repo.CreateQuote(context.Background(), &quote); err != nil {
		t.Fatalf("create quote %s: %v", quote.CustomerName, err)
	}
	if quote.ID == "" {
		t.Fatal("expected generated quote id")
	}
	return quote
}

func TestQuoteRepositoryListActiveExcludesArchivedAndCountsAppliances(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	older := mustCreateQuote(t, repo, models.Quote{CustomerName: "Older", Email: "o@example.com", PhonePrimary: "1", CreatedAt: base})
	newer := mustCreateQuote(t, repo, models.Quote{CustomerName: "Newer", Email: "n@example.com", PhonePrimary: "2", CreatedAt: base.Add(time.Hour)})
	mustCreateQuote(t, repo, models.Quote{CustomerName: "Gone", Email: "g@example.com", PhonePrimary: "3", CreatedAt: base, Archived: true})

	for i := 0; i < 2; i++ {
		if err := repo.CreateAppliance(ctx, &models.ApplianceDetail{QuoteID: older.ID, ApplianceType: "Dishwasher"}); err != nil {
			t.Fatalf("create appliance: %v", err)
		}
	}

	summaries, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 active quotes, got %d", len(summaries))
	}
	if summaries[0].ID != newer.ID || summaries[1].ID != older.ID {
		t.Fatalf("expected newest first, got %s then %s", summaries[0].CustomerName, summaries[1].CustomerName)
	}
	if summaries[1].ApplianceCount != 2 {
		t.Fatalf("expected appliance count 2, got %d", summaries[1].ApplianceCount)
	}
	if summaries[0].ApplianceCount != 0 {
		t.Fatalf("expected appliance count 0, got %d", summaries[0].ApplianceCount)
	}
}

func TestQuoteRepositoryFindByIDNotFound(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestQuoteRepositoryListFilesOrdersByUploadOrder(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)
	ctx := context.Background()
	quote := mustCreateQuote(t, repo, models.Quote{CustomerName: "Files", Email: "f@example.com", PhonePrimary: "1"})

	for _, file := range []models.QuoteFile{
		{QuoteID: quote.ID, FileName: "third.pdf", StoragePath: "a/3", UploadOrder: 3},
		{QuoteID: quote.ID, FileName: "first.jpg", StoragePath: "a/1", UploadOrder: 1},
		{QuoteID: quote.ID, FileName: "second.docx", StoragePath: "a/2", UploadOrder: 2},
	} {
		file := file
		if err := repo.CreateFile(ctx, &file); err != nil {
			t.Fatalf("create file: %v", err)
		}
	}

	files, err := repo.ListFiles(ctx, quote.ID)
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	got := []string{files[0].FileName, files[1].FileName, files[2].FileName}
	want := []string{"first.jpg", "second.docx", "third.pdf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}

	found, err := repo.FindFile(ctx, quote.ID, files[0].ID)
	if err != nil {
		t.Fatalf("find file: %v", err)
	}
	if found.StoragePath != "a/1" {
		t.Fatalf("unexpected file %+v", found)
	}

	if _, err := repo.FindFile(ctx, "other-quote", files[0].ID); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound for foreign quote, got %v", err)
	}
}

func TestQuoteRepositorySetEntered(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)
	ctx := context.Background()
	quote := mustCreateQuote(t, repo, models.Quote{CustomerName: "Toggle", Email: "t@example.com", PhonePrimary: "1"})

	if err := repo.SetEntered(ctx, quote.ID, true); err != nil {
		t.Fatalf("set entered: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if !reloaded.EnteredStatus {
		t.Fatal("expected entered_status=true")
	}

	if err := repo.SetEntered(ctx, "missing", true); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestQuoteRepositoryArchiveEnteredOnlyTouchesEnteredActiveRows(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)
	ctx := context.Background()

	entered := mustCreateQuote(t, repo, models.Quote{CustomerName: "Entered", Email: "e@example.com", PhonePrimary: "1", EnteredStatus: true})
	pending := mustCreateQuote(t, repo, models.Quote{CustomerName: "Pending", Email: "p@example.com", PhonePrimary: "2"})
	mustCreateQuote(t, repo, models.Quote{CustomerName: "Done", Email: "d@example.com", PhonePrimary: "3", EnteredStatus: true, Archived: true})

	affected, err := repo.ArchiveEntered(ctx)
	if err != nil {
		t.Fatalf("archive entered: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 archived row, got %d", affected)
	}

	summaries, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != pending.ID {
		t.Fatalf("expected only pending quote to remain active, got %+v", summaries)
	}

	archived, err := repo.FindByID(ctx, entered.ID)
	if err != nil {
		t.Fatalf("reload archived quote: %v", err)
	}
	if !archived.Archived {
		t.Fatal("expected entered quote to be archived, not deleted")
	}
}

func TestQuoteRepositoryPersistsJSONArrays(t *testing.T) {
	repo := newQuoteRepositoryForTest(t)
	ctx := context.Background()
	quote := mustCreateQuote(t, repo, models.Quote{
		CustomerName:  "Arrays",
		Email:         "a@example.com",
		PhonePrimary:  "1",
		PreferredTime: []string{"Morning (8AM - 12PM)", "Afternoon (12PM - 4PM)"},
	})
	if err := repo.CreateAppliance(ctx, &models.ApplianceDetail{
		QuoteID:       quote.ID,
		ApplianceType: "Range",
		Specifics:     []string{"Gas", "30 inch"},
	}); err != nil {
		t.Fatalf("create appliance: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if len(reloaded.PreferredTime) != 2 || reloaded.PreferredTime[1] != "Afternoon (12PM - 4PM)" {
		t.Fatalf("unexpected preferred time %v", reloaded.PreferredTime)
	}

	appliances, err := repo.ListAppliances(ctx, quote.ID)
	if err != nil {
		t.Fatalf("list appliances: %v", err)
	}
	if len(appliances) != 1 || len(appliances[0].Specifics) != 2 {
		t.Fatalf("unexpected appliances %+v", appliances)
	}
}
