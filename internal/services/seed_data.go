package services

import "github.com/proappliance/quoteadmin/internal/models"

type seedAppliance struct {
	Type      string
	Brand     string
	Model     string
	Specifics []string
}

type seedRecord struct {
	Quote      models.Quote
	Appliances []seedAppliance
}

// seedRecords returns fresh copies on every call so a run never sees the
// mutations of a previous one.
func seedRecords() []seedRecord {
	return []seedRecord{
		{
			Quote: models.Quote{
				CustomerName:      "Michael Rodriguez",
				Email:             "michael.rodriguez@email.com",
				PhonePrimary:      "(555) 234-5678",
				PhoneSecondary:    "(555) 234-5679",
				ClientType:        "Homeowner",
				Purchased:         models.FlagYes,
				FieldMeasure:      models.FlagYes,
				Delivery:          models.FlagYes,
				PickupLocation:    "Home Depot - San Jose",
				PickupDate:        "2024-08-25",
				Uninstall:         models.FlagYes,
				HaulAway:          models.FlagYes,
				Street:            "123 Oak Street",
				City:              "San Jose",
				Zip:               "95110",
				HomeType:          "Single Family",
				Floor:             "1st Floor",
				Stairs:            models.FlagNo,
				Parking:           "Driveway",
				PreferredDate:     "2024-08-28",
				PreferredTime:     []string{"Morning (8am-12pm)"},
				AdditionalDetails: "Kitchen remodel - need all appliances installed same day",
			},
			Appliances: []seedAppliance{
				{Type: "Range", Brand: "Samsung", Model: "NX60T8511SS", Specifics: []string{"Gas Conversion Kit"}},
				{Type: "Dishwasher", Brand: "Bosch", Model: "SHPM78Z55N", Specifics: []string{"Custom Panel Ready"}},
				{Type: "Refrigerator", Brand: "LG", Model: "LRFVS3006S", Specifics: []string{"Counter Depth"}},
			},
		},
		{
			Quote: models.Quote{
				CustomerName:      "Sarah Chen",
				Email:             "sarah.chen@email.com",
				PhonePrimary:      "(555) 567-8901",
				ClientType:        "Homeowner",
				Purchased:         models.FlagYes,
				FieldMeasure:      models.FlagNo,
				Delivery:          models.FlagYes,
				PickupLocation:    "Best Buy - Cupertino",
				Uninstall:         models.FlagNo,
				HaulAway:          models.FlagNo,
				Street:            "456 Maple Ave",
				City:              "Cupertino",
				Zip:               "95014",
				HomeType:          "Townhouse",
				Floor:             "1st Floor",
				Stairs:            models.FlagNo,
				Parking:           "Street Parking",
				ParkingNotes:      "2-hour limit, will arrange permit",
				PreferredDate:     "2024-08-30",
				PreferredTime:     []string{"Afternoon (12pm-6pm)"},
				AdditionalDetails: "New construction - first appliance install",
			},
			Appliances: []seedAppliance{
				{Type: "Washer/Dryer", Brand: "Whirlpool", Model: "WFC8090GX", Specifics: []string{"Stacked Unit", "Ventless"}},
			},
		},
		{
			Quote: models.Quote{
				CustomerName:      "David Kim",
				Email:             "d.kim@company.com",
				PhonePrimary:      "(555) 789-0123",
				PhoneSecondary:    "(555) 789-0124",
				ClientType:        "Property Manager",
				CompanyName:       "Bay Area Properties LLC",
				Purchased:         models.FlagNo,
				FieldMeasure:      models.FlagYes,
				Delivery:          models.FlagNo,
				Uninstall:         models.FlagYes,
				HaulAway:          models.FlagYes,
				Street:            "789 Pine Street",
				City:              "Palo Alto",
				Zip:               "94301",
				HomeType:          "Condo",
				Floor:             "3rd Floor",
				Stairs:            models.FlagYes,
				StairsNumber:      "2 flights",
				StairsTurns:       models.FlagYes,
				Parking:           "Underground Garage",
				GateCode:          "1234",
				PreferredDate:     "2024-09-02",
				PreferredTime:     []string{"Morning (8am-12pm)", "Afternoon (12pm-6pm)"},
				AdditionalDetails: "Rental property - tenant will be present",
			},
			Appliances: []seedAppliance{
				{Type: "Refrigerator", Brand: "GE", Model: "GNE27JSMSS", Specifics: []string{"Standard Depth"}},
				{Type: "Range", Brand: "GE", Model: "JGB735SPSS", Specifics: []string{"Gas"}},
			},
		},
		{
			Quote: models.Quote{
				CustomerName:      "Jennifer Thompson",
				Email:             "jen.thompson@email.com",
				PhonePrimary:      "(555) 890-1234",
				ClientType:        "Homeowner",
				Purchased:         models.FlagYes,
				FieldMeasure:      models.FlagYes,
				Delivery:          models.FlagYes,
				PickupLocation:    "Costco - San Francisco",
				PickupDate:        "2024-09-05",
				Uninstall:         models.FlagYes,
				HaulAway:          models.FlagYes,
				Street:            "321 Hill Street",
				City:              "San Francisco",
				Zip:               "94110",
				HomeType:          "Single Family",
				Floor:             "1st Floor",
				Stairs:            models.FlagYes,
				StairsNumber:      "5 steps",
				StairsTurns:       models.FlagNo,
				Parking:           "Street Parking",
				ParkingNotes:      "Very narrow street - may need hand truck",
				PreferredDate:     "2024-09-08",
				PreferredTime:     []string{"Morning (8am-12pm)"},
				AdditionalDetails: "Older home - may need electrical work for dishwasher",
			},
			Appliances: []seedAppliance{
				{Type: "Dishwasher", Brand: "KitchenAid", Model: "KDFE104KPS", Specifics: []string{"PrintShield Finish"}},
				{Type: "Microwave", Brand: "KitchenAid", Model: "KMHC319ESS", Specifics: []string{"Over Range"}},
			},
		},
		{
			Quote: models.Quote{
				CustomerName:      "Robert Martinez",
				Email:             "robert.martinez@email.com",
				PhonePrimary:      "(555) 901-2345",
				ClientType:        "Homeowner",
				Purchased:         models.FlagYes,
				FieldMeasure:      models.FlagNo,
				Delivery:          models.FlagYes,
				PickupLocation:    "Lowe's - Mountain View",
				Uninstall:         models.FlagNo,
				HaulAway:          models.FlagNo,
				Street:            "654 Cedar Lane",
				City:              "Mountain View",
				Zip:               "94040",
				HomeType:          "Single Family",
				Floor:             "1st Floor",
				Stairs:            models.FlagNo,
				Parking:           "Driveway",
				PreferredDate:     "2024-09-10",
				PreferredTime:     []string{"Afternoon (12pm-6pm)"},
				AdditionalDetails: "Wine storage unit for home bar area",
			},
			Appliances: []seedAppliance{
				{Type: "Wine Cooler", Brand: "NewAir", Model: "AWR-290DB", Specifics: []string{"Dual Zone", "29 Bottle"}},
			},
		},
	}
}
