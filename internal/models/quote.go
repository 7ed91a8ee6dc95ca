package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FlagYes = "Yes"
	FlagNo  = "No"
)

type Quote struct {
	ID                string `gorm:"primaryKey"`
	CustomerName      string `gorm:"not null"`
	Email             string `gorm:"not null"`
	PhonePrimary      string `gorm:"not null"`
	PhoneSecondary    string
	ClientType        string
	CompanyName       string
	CompanyAddress    string
	Street            string
	City              string
	Zip               string
	HomeType          string
	Floor             string
	Stairs            string
	StairsNumber      string
	StairsTurns       string
	Parking           string
	ParkingNotes      string
	GateCode          string
	Purchased         string
	FieldMeasure      string
	Delivery          string
	PickupLocation    string
	PickupDate        string
	Uninstall         string
	HaulAway          string
	PreferredDate     string
	PreferredTime     []string `gorm:"serializer:json"`
	AdditionalDetails string
	CreatedAt         time.Time `gorm:"not null"`
	EnteredStatus     bool      `gorm:"not null;default:false"`
	Archived          bool      `gorm:"not null;default:false"`
}

func (quote *Quote) BeforeCreate(_ *gorm.DB) error {
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	return nil
}

func (quote Quote) HasCompany() bool {
	return quote.CompanyName != "" || quote.CompanyAddress != ""
}

// ShortID is the eight character prefix shown in page headers.
func (quote Quote) ShortID() string {
	if len(quote.ID) <= 8 {
		return quote.ID
	}
	return quote.ID[:8]
}

// QuoteSummary is the list projection of a quote.
type QuoteSummary struct {
	ID             string
	CustomerName   string
	Email          string
	PhonePrimary   string
	CreatedAt      time.Time
	ApplianceCount int
	EnteredStatus  bool
	Archived       bool
}

type ApplianceDetail struct {
	ID                  uint     `gorm:"primaryKey"`
	QuoteID             string   `gorm:"not null;index"`
	ApplianceType       string   `gorm:"not null;default:''"`
	Brand               string
	Model               string
	Notes               string
	Specifics           []string `gorm:"serializer:json"`
	SpecialRequirements string
}

type QuoteFile struct {
	ID          uint   `gorm:"primaryKey"`
	QuoteID     string `gorm:"not null;index"`
	FileName    string `gorm:"not null"`
	FileSize    int64  `gorm:"not null;default:0"`
	StoragePath string `gorm:"not null"`
	UploadOrder int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
}
