package services

import (
	"strings"

	"github.com/proappliance/quoteadmin/internal/models"
)

// CopyField is one scalar quote value offered for copying. Value is the raw
// stored text, never the formatted display text.
type CopyField struct {
	Key   string
	Label string
	Value string
}

// QuoteCopyFields lists the copyable scalar fields of a quote in display
// order. Empty values are skipped.
func QuoteCopyFields(quote models.Quote) []CopyField {
	candidates := []CopyField{
		{Key: "customer_name", Label: "Name", Value: quote.CustomerName},
		{Key: "email", Label: "Email", Value: quote.Email},
		{Key: "phone_primary", Label: "Primary phone", Value: quote.PhonePrimary},
		{Key: "phone_secondary", Label: "Secondary phone", Value: quote.PhoneSecondary},
		{Key: "client_type", Label: "Client type", Value: quote.ClientType},
		{Key: "street", Label: "Street", Value: quote.Street},
		{Key: "city", Label: "City", Value: quote.City},
		{Key: "zip", Label: "ZIP", Value: quote.Zip},
		{Key: "home_type", Label: "Home type", Value: quote.HomeType},
		{Key: "floor", Label: "Floor", Value: quote.Floor},
		{Key: "company_name", Label: "Company", Value: quote.CompanyName},
		{Key: "company_address", Label: "Company address", Value: quote.CompanyAddress},
		{Key: "stairs_number", Label: "Stairs", Value: quote.StairsNumber},
		{Key: "stairs_turns", Label: "Stair turns", Value: quote.StairsTurns},
		{Key: "parking", Label: "Parking", Value: quote.Parking},
		{Key: "parking_notes", Label: "Parking notes", Value: quote.ParkingNotes},
		{Key: "gate_code", Label: "Gate code", Value: quote.GateCode},
		{Key: "pickup_location", Label: "Pickup location", Value: quote.PickupLocation},
		{Key: "pickup_date", Label: "Pickup date", Value: quote.PickupDate},
		{Key: "preferred_date", Label: "Preferred date", Value: quote.PreferredDate},
		{Key: "additional_details", Label: "Additional details", Value: quote.AdditionalDetails},
	}

	fields := make([]CopyField, 0, len(candidates))
	for _, field := range candidates {
		if field.Value == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func QuoteCopyValue(quote models.Quote, key string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for _, field := range QuoteCopyFields(quote) {
		if field.Key == normalized {
			return field.Value, true
		}
	}
	return "", false
}

// FullAddress is the one composed value offered for copying.
func FullAddress(quote models.Quote) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{quote.Street, quote.City, quote.Zip} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
