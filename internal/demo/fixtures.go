package demo

import (
	"fmt"
	"time"

	"grochain-dashboard/internal/models"
)

var epoch = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time { return epoch.AddDate(0, 0, n) }

var demoFarmers = []models.Party{
	{ID: "F001", Name: "Amina Bello", Email: "amina.bello@farm.ng", Phone: "+2348031234567"},
	{ID: "F002", Name: "Chinedu Okafor", Email: "chinedu.okafor@farm.ng", Phone: "+2348052345678"},
	{ID: "F003", Name: "Fatima Sani", Email: "fatima.sani@farm.ng", Phone: "+2348063456789"},
	{ID: "F004", Name: "Tunde Adeyemi", Email: "tunde.adeyemi@farm.ng", Phone: "+2348074567890"},
	{ID: "F005", Name: "Ngozi Eze", Email: "ngozi.eze@farm.ng", Phone: "+2348085678901"},
	{ID: "F006", Name: "Ibrahim Musa", Email: "ibrahim.musa@farm.ng", Phone: "+2348096789012"},
}

var demoLocations = []string{"Kaduna", "Enugu", "Kano", "Oyo", "Anambra", "Niger"}

func farmers() []models.Farmer {
	statuses := []models.FarmerStatus{models.FarmerActive, models.FarmerActive, models.FarmerInactive, models.FarmerActive, models.FarmerSuspended, models.FarmerActive}
	out := make([]models.Farmer, len(demoFarmers))
	for i, p := range demoFarmers {
		out[i] = models.Farmer{
			ID:            p.ID,
			Name:          p.Name,
			Email:         p.Email,
			Phone:         p.Phone,
			Location:      demoLocations[i],
			Status:        statuses[i],
			JoinedAt:      day(-180 + i*15),
			LastActivity:  day(-i),
			TotalHarvests: 4 + i*3,
			TotalEarnings: float64(150000 + i*82500),
			Partner:       "P001",
		}
	}
	return out
}

func commissions() []models.Commission {
	statuses := []models.CommissionStatus{
		models.CommissionPending, models.CommissionApproved, models.CommissionPaid,
		models.CommissionPending, models.CommissionApproved, models.CommissionCancelled,
		models.CommissionPaid, models.CommissionPending, models.CommissionApproved,
		models.CommissionPaid, models.CommissionPending, models.CommissionApproved,
	}
	out := make([]models.Commission, len(statuses))
	for i, st := range statuses {
		orderAmount := float64(20000 + i*7500)
		c := models.Commission{
			ID:          fmt.Sprintf("C%03d", i+1),
			Farmer:      demoFarmers[i%len(demoFarmers)],
			Order:       fmt.Sprintf("O%03d", i+1),
			Rate:        0.05,
			Amount:      orderAmount * 0.05,
			Status:      st,
			OrderAmount: orderAmount,
			OrderDate:   day(-i * 3),
		}
		if st == models.CommissionPaid {
			paid := day(-i*3 + 2)
			c.PaidAt = &paid
			c.WithdrawalID = fmt.Sprintf("W%03d", i+1)
		}
		out[i] = c
	}
	return out
}

func referrals() []models.Referral {
	statuses := []models.ReferralStatus{models.ReferralActive, models.ReferralPending, models.ReferralCompleted, models.ReferralActive, models.ReferralPending, models.ReferralCompleted}
	out := make([]models.Referral, len(demoFarmers))
	for i, p := range demoFarmers {
		r := models.Referral{
			ID:             fmt.Sprintf("R%03d", i+1),
			Farmer:         p,
			CommissionRate: 0.05,
			Status:         statuses[i],
			Notes:          "Met at " + demoLocations[i] + " cooperative meeting",
			CreatedAt:      day(-90 + i*10),
			UpdatedAt:      day(-i),
		}
		if r.Status == models.ReferralCompleted {
			amount := float64(5000 + i*1250)
			r.Commission = &amount
		}
		out[i] = r
	}
	return out
}

func listings() []models.Listing {
	crops := []struct {
		name, category, unit string
		price, qty           float64
	}{
		{"Yellow Maize", "grains", "kg", 450, 2000},
		{"Ofada Rice", "grains", "kg", 1200, 800},
		{"Fresh Tomatoes", "vegetables", "basket", 9500, 40},
		{"Cassava Tubers", "tubers", "kg", 220, 5000},
		{"Sweet Oranges", "fruits", "crate", 7000, 60},
		{"Brown Beans", "legumes", "kg", 1500, 1200},
	}
	out := make([]models.Listing, len(crops))
	for i, c := range crops {
		out[i] = models.Listing{
			ID:             fmt.Sprintf("L%03d", i+1),
			Name:           c.name,
			Price:          c.price,
			Quantity:       c.qty,
			Unit:           c.unit,
			Category:       c.category,
			Location:       demoLocations[i],
			Farmer:         demoFarmers[i],
			Images:         []string{fmt.Sprintf("https://cdn.grochain.example/listings/L%03d.jpg", i+1)},
			HarvestDate:    day(-7 - i),
			Certifications: []string{"organic"},
			QRCode:         fmt.Sprintf("GC-BATCH-%03d", i+1),
		}
	}
	return out
}

func orders() []models.Order {
	ls := listings()
	statuses := []struct{ status, payment string }{
		{"pending", "pending"},
		{"confirmed", "paid"},
		{"shipped", "paid"},
		{"delivered", "paid"},
	}
	out := make([]models.Order, len(statuses))
	for i, st := range statuses {
		l := ls[i]
		qty := float64(10 * (i + 1))
		out[i] = models.Order{
			ID:            fmt.Sprintf("O%03d", i+1),
			OrderNumber:   fmt.Sprintf("GC-2024-%04d", 101+i),
			Status:        st.status,
			PaymentStatus: st.payment,
			TotalAmount:   l.Price * qty,
			Items:         []models.OrderItem{{Listing: l.ID, Name: l.Name, Quantity: qty, Unit: l.Unit, Price: l.Price}},
			Buyer:         models.Party{ID: "B001", Name: "Lagos Fresh Foods"},
			Seller:        l.Farmer,
			ShippingAddress: &models.Address{
				Street:  "14 Marina Road",
				City:    "Lagos",
				State:   "Lagos",
				Country: "NG",
			},
		}
		if st.status == "shipped" || st.status == "delivered" {
			out[i].TrackingNumber = fmt.Sprintf("TRK%06d", 420000+i)
		}
	}
	return out
}

func creditScore() models.CreditScore {
	history := make([]models.CreditEvent, 5)
	for i := range history {
		history[i] = models.CreditEvent{
			TransactionID: fmt.Sprintf("T%03d", i+1),
			Amount:        float64(25000 + i*10000),
			Date:          day(-30 * i),
		}
	}
	return models.CreditScore{Score: 712, History: history, UpdatedAt: day(0)}
}

func harvest() models.Harvest {
	return models.Harvest{
		CropType:    "maize",
		Quantity:    2000,
		Unit:        "kg",
		Quality:     "excellent",
		Location:    "Kaduna",
		HarvestDate: day(-7),
		Farmer:      demoFarmers[0],
		Images:      []string{"https://cdn.grochain.example/harvests/maize.jpg"},
		Status:      "approved",
	}
}
