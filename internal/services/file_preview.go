package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
	"github.com/proappliance/quoteadmin/internal/storage"
)

type FileKind string

const (
	FileKindImage       FileKind = "image"
	FileKindPDF         FileKind = "pdf"
	FileKindWord        FileKind = "word"
	FileKindSpreadsheet FileKind = "spreadsheet"
	FileKindGeneric     FileKind = "generic"
)

var (
	imageFilePattern       = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	pdfFilePattern         = regexp.MustCompile(`(?i)\.pdf$`)
	wordFilePattern        = regexp.MustCompile(`(?i)\.(doc|docx)$`)
	spreadsheetFilePattern = regexp.MustCompile(`(?i)\.(xls|xlsx)$`)
)

func ClassifyFile(name string) FileKind {
	switch {
	case imageFilePattern.MatchString(name):
		return FileKindImage
	case pdfFilePattern.MatchString(name):
		return FileKindPDF
	case wordFilePattern.MatchString(name):
		return FileKindWord
	case spreadsheetFilePattern.MatchString(name):
		return FileKindSpreadsheet
	default:
		return FileKindGeneric
	}
}

func FormatFileSizeMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// FilePreview is one resolved file card. URL is empty when signing failed.
type FilePreview struct {
	File      models.QuoteFile
	Kind      FileKind
	URL       string
	SizeLabel string
}

func (preview FilePreview) HasDownload() bool {
	return preview.URL != ""
}

func (preview FilePreview) ShowThumbnail() bool {
	return preview.Kind == FileKindImage && preview.URL != ""
}

type FilePreviewService struct {
	signer storage.Signer
	ttl    time.Duration
}

func NewFilePreviewService(signer storage.Signer) *FilePreviewService {
	return &FilePreviewService{signer: signer, ttl: storage.SignedURLTTL}
}

// Resolve never fails: a signing error is logged and the card degrades to
// icon, name and size.
func (service *FilePreviewService) Resolve(ctx context.Context, file models.QuoteFile) FilePreview {
	preview := FilePreview{
		File:      file,
		Kind:      ClassifyFile(file.FileName),
		SizeLabel: FormatFileSizeMB(file.FileSize),
	}
	if service.signer == nil {
		return preview
	}

	signedURL, err := service.signer.CreateSignedURL(ctx, file.StoragePath, service.ttl, storage.WithDownloadName(file.FileName))
	if err != nil {
		log.Printf("sign url for file %d (%s) failed: %v", file.ID, file.StoragePath, err)
		return preview
	}
	preview.URL = signedURL
	return preview
}
