package catalog

import "floodaid/internal/models"

// Default returns the built-in reference catalog
func Default() *Catalog {
	return New(seedData())
}

func seedData() Data {
	return Data{
		Shelters: []models.Shelter{
			{Name: "Lahore Central Relief Camp", Address: "Mall Road, Lahore", Capacity: 500, Available: 200, Facilities: []string{"Medical", "Food", "Water", "Sanitation"}, Phone: "042-99201234"},
			{Name: "Shalamar Emergency Shelter", Address: "Shalamar Gardens, Lahore", Capacity: 300, Available: 150, Facilities: []string{"Food", "Water", "Beds"}, Phone: "042-99205678"},
			{Name: "Gulberg Relief Point", Address: "Gulberg III, Lahore", Capacity: 400, Available: 100, Facilities: []string{"Medical", "Food", "Water", "Electricity"}, Phone: "042-99209012"},
			{Name: "Karachi Saddar Shelter", Address: "Saddar Town, Karachi", Capacity: 600, Available: 350, Facilities: []string{"Medical", "Food", "Water", "Security"}, Phone: "021-99301234"},
			{Name: "Clifton Emergency Camp", Address: "Clifton Block 5, Karachi", Capacity: 450, Available: 280, Facilities: []string{"Food", "Water", "Beds", "Sanitation"}, Phone: "021-99305678"},
			{Name: "Islamabad F-7 Relief Center", Address: "F-7 Markaz, Islamabad", Capacity: 450, Available: 200, Facilities: []string{"Medical", "Food", "Water", "Electricity"}, Phone: "051-99401234"},
			{Name: "Rawalpindi Cantonment Shelter", Address: "Mall Road, Rawalpindi", Capacity: 380, Available: 180, Facilities: []string{"Food", "Water", "Medical"}, Phone: "051-99405678"},
			{Name: "Multan Ghanta Ghar Relief Camp", Address: "Ghanta Ghar, Multan", Capacity: 350, Available: 150, Facilities: []string{"Food", "Water", "Beds"}, Phone: "061-99501234"},
			{Name: "Faisalabad Clock Tower Shelter", Address: "Ghanta Ghar, Faisalabad", Capacity: 420, Available: 220, Facilities: []string{"Medical", "Food", "Water"}, Phone: "041-99601234"},
			{Name: "Peshawar Hayatabad Relief Point", Address: "Hayatabad Phase 1, Peshawar", Capacity: 300, Available: 120, Facilities: []string{"Food", "Water", "Security"}, Phone: "091-99701234"},
		},
		ContactGroups: []models.ContactGroup{
			{Category: "Emergency Services", Contacts: []models.Contact{
				{Name: "Rescue 1122", Number: "1122", Availability: "24/7"},
				{Name: "Edhi Ambulance", Number: "115", Availability: "24/7"},
				{Name: "Police Emergency", Number: "15", Availability: "24/7"},
			}},
			{Category: "Disaster Management", Contacts: []models.Contact{
				{Name: "NDMA Helpline", Number: "051-9205019", Availability: "24/7"},
				{Name: "PDMA Punjab", Number: "1129", Availability: "24/7"},
				{Name: "SDMA Sindh", Number: "021-99332288", Availability: "24/7"},
			}},
			{Category: "Relief Organizations", Contacts: []models.Contact{
				{Name: "Pakistan Red Crescent", Number: "051-9250404", Availability: "24/7"},
				{Name: "Al-Khidmat Foundation", Number: "0800-55555", Availability: "24/7"},
				{Name: "JDC Foundation", Number: "0800-35267", Availability: "24/7"},
				{Name: "Saylani Welfare", Number: "021-36636025", Availability: "24/7"},
			}},
		},
		MedicalTips: []models.MedicalTip{
			{Title: "Waterborne Disease Prevention", Description: "Always boil water for at least 5 minutes before drinking. Use water purification tablets when available. Avoid flood water contact.", Priority: models.PriorityCritical},
			{Title: "First Aid Essentials", Description: "Keep bandages, antiseptic cream, pain relievers (paracetamol), oral rehydration salts, mosquito repellent, and any prescription medications.", Priority: models.PriorityHigh},
			{Title: "Flood-Related Injuries", Description: "Clean all wounds immediately with clean water and antiseptic. Cover with sterile bandages. Watch for signs of infection (redness, swelling, pus).", Priority: models.PriorityHigh},
			{Title: "Food Safety", Description: "Discard any food that has come in contact with flood water. Don't eat fresh produce from flooded areas. Cook all food thoroughly.", Priority: models.PriorityCritical},
			{Title: "Hygiene Practices", Description: "Wash hands frequently with soap. Use hand sanitizer when soap unavailable. Keep wounds clean and covered. Avoid touching face with dirty hands.", Priority: models.PriorityHigh},
			{Title: "Mental Health", Description: "Talk to family and friends about feelings. Practice deep breathing. Seek professional help if feeling overwhelmed. Stay connected with community.", Priority: models.PriorityMedium},
		},
		ReliefCamps: []models.ReliefCamp{
			{Name: "Red Crescent Camp - Multan Road", City: "Lahore", Supplies: []string{"Food Packets", "Clean Water", "Clothes", "Blankets"}, Contact: "0300-1234567", OpenHours: "24/7"},
			{Name: "Al-Khidmat Foundation - Johar Town", City: "Lahore", Supplies: []string{"Medical Aid", "Food", "Baby Formula"}, Contact: "0321-9876543", OpenHours: "8 AM - 10 PM"},
			{Name: "Saylani Welfare - Raiwind Road", City: "Lahore", Supplies: []string{"Cooked Meals", "Groceries", "Medicine"}, Contact: "0333-4567890", OpenHours: "24/7"},
			{Name: "JDC Foundation - Model Town", City: "Lahore", Supplies: []string{"Emergency Kits", "Tents", "Mattresses"}, Contact: "0345-1122334", OpenHours: "24/7"},
			{Name: "Edhi Center - Saddar", City: "Karachi", Supplies: []string{"Food", "Water", "Medical", "Clothes"}, Contact: "0300-2345678", OpenHours: "24/7"},
			{Name: "Chippa Welfare - Nazimabad", City: "Karachi", Supplies: []string{"Cooked Food", "Ambulance", "Medicine"}, Contact: "0321-3456789", OpenHours: "24/7"},
		},
		DonationNeeds: []models.DonationNeed{
			{Item: "Clean Drinking Water (Bottled)", Priority: models.PriorityCritical, Quantity: "10,000 liters", Urgency: "Immediate"},
			{Item: "Ready-to-Eat Food Packets", Priority: models.PriorityCritical, Quantity: "5,000 packets", Urgency: "Immediate"},
			{Item: "Medical Supplies & First Aid Kits", Priority: models.PriorityCritical, Quantity: "500 kits", Urgency: "Immediate"},
			{Item: "Oral Rehydration Salts (ORS)", Priority: models.PriorityCritical, Quantity: "2,000 packets", Urgency: "24 hours"},
			{Item: "Blankets & Warm Clothes", Priority: models.PriorityHigh, Quantity: "2,000 items", Urgency: "48 hours"},
			{Item: "Baby Formula & Diapers", Priority: models.PriorityHigh, Quantity: "1,000 units", Urgency: "24 hours"},
			{Item: "Mosquito Nets", Priority: models.PriorityHigh, Quantity: "1,500 nets", Urgency: "48 hours"},
			{Item: "Solar Lanterns & Batteries", Priority: models.PriorityMedium, Quantity: "800 units", Urgency: "1 week"},
			{Item: "Hygiene Kits (Soap, Sanitizer)", Priority: models.PriorityHigh, Quantity: "3,000 kits", Urgency: "48 hours"},
			{Item: "Tents & Tarpaulins", Priority: models.PriorityMedium, Quantity: "500 units", Urgency: "1 week"},
		},
		SafetyPhases: []models.SafetyPhase{
			{Phase: models.PhaseBeforeFlood, Tips: []string{
				"Store important documents in waterproof containers",
				"Prepare emergency kit with 3-day supplies",
				"Know evacuation routes and shelter locations",
				"Keep phone charged and have backup power",
				"Store drinking water and non-perishable food",
			}},
			{Phase: models.PhaseDuringFlood, Tips: []string{
				"Move to higher ground immediately",
				"Avoid walking or driving through flood water",
				"Stay away from power lines and electrical equipment",
				"Listen to emergency broadcasts on radio",
				"Do not drink flood water",
			}},
			{Phase: models.PhaseAfterFlood, Tips: []string{
				"Return home only when authorities say it's safe",
				"Avoid flood water - may contain sewage or chemicals",
				"Check for structural damage before entering buildings",
				"Discard contaminated food and water",
				"Document damage for insurance claims",
			}},
		},
	}
}
