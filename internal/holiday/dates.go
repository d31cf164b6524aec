package holiday

// PublicHolidays lists Singapore public holidays for 2025 and 2026.
// Source: Ministry of Manpower (mom.gov.sg).
// Update annually by adding the following year's dates.
var PublicHolidays = []string{
	// 2025
	"2025-01-01", // New Year's Day
	"2025-01-29", // Chinese New Year
	"2025-01-30", // Chinese New Year (Day 2)
	"2025-03-31", // Hari Raya Puasa
	"2025-04-18", // Good Friday
	"2025-05-01", // Labour Day
	"2025-05-12", // Vesak Day
	"2025-06-07", // Hari Raya Haji
	"2025-08-09", // National Day
	"2025-10-20", // Deepavali
	"2025-12-25", // Christmas Day

	// 2026
	"2026-01-01", // New Year's Day
	"2026-01-17", // Chinese New Year
	"2026-01-18", // Chinese New Year (Day 2)
	"2026-03-20", // Hari Raya Puasa
	"2026-04-03", // Good Friday
	"2026-05-01", // Labour Day
	"2026-05-31", // Vesak Day
	"2026-05-27", // Hari Raya Haji
	"2026-08-10", // National Day (observed, falls on Sunday)
	"2026-11-07", // Deepavali
	"2026-12-25", // Christmas Day
}
