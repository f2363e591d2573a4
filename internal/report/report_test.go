package report

import (
	"time"

	"lenovo-report/internal/components/chrono"
	"lenovo-report/internal/scrapers/lenovo"
)

var testClock = chrono.FixedTime{
	At: time.Date(2026, time.October, 19, 14, 30, 5, 0, time.UTC),
}

func testLookup() lenovo.Lookup {
	var spec lenovo.SpecMap
	spec.SetIfAbsent("Memory", "8GB DDR4")
	spec.SetIfAbsent("Chassis", "Black")
	spec.SetIfAbsent("Processor", "Intel Core i7")

	return lenovo.Lookup{
		Record: lenovo.Record{
			ProductName:    "ThinkPad T14 Gen 2 Laptop - Type 20W0",
			Serial:         "PF2V08GA",
			MachineType:    "20W0",
			Product:        "20W0005AUS",
			Model:          "005AUS",
			Family:         "ThinkPad T14 Gen 2 Laptop - Type 20W0",
			ShipToCountry:  "US",
			WarrantyStatus: "In Warranty",
			PlanName:       "Premier Support",
			DeliveryType:   "Onsite",
			StartDate:      "2021-06-01",
			EndDate:        "2099-06-01",
			SubSeries:      "ThinkPad-T14-Gen2",
		},
		Spec:       spec,
		ProductKey: "ThinkPad_T14_Gen2",
		ProductUrl: "https://pcsupport.lenovo.com/us/en/products/laptops-and-netbooks/20w0/pf2v08ga",
	}
}
