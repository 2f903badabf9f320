package customer

import (
	"time"

	"carrental/model"
	"carrental/util/datex"
)

type RegisterCustomerReq struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"first_name" validate:"required"`
	LastName      string   `json:"last_name" validate:"required"`
	BirthDate     string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	LicenseNumber string   `json:"license_number" validate:"required"`
	LicenseTypes  []string `json:"license_types" validate:"required,min=1,dive,oneof=B A1 A C1 C b a1 a c1 c"`
	LicenseDate   string   `json:"license_date" validate:"required,datetime=2006-01-02"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required"`
	Address       string   `json:"address"`
}

type BlockReq struct {
	Reason string `json:"reason" validate:"required"`
}

// CustomerResp adds the derived fields a counter agent needs at a
// glance: age, license seniority and the loyalty tier.
type CustomerResp struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	BirthDate       string   `json:"birth_date"`
	Age             int      `json:"age"`
	LicenseNumber   string   `json:"license_number"`
	LicenseTypes    []string `json:"license_types"`
	LicenseDate     string   `json:"license_date"`
	YearsOfLicense  int      `json:"years_of_license"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Address         string   `json:"address,omitempty"`
	TotalRentals    int      `json:"total_rentals"`
	ActiveRentals   []string `json:"active_rentals"`
	Loyal           bool     `json:"loyal"`
	LoyaltyDiscount float64  `json:"loyalty_discount"`
	Blocked         bool     `json:"blocked"`
	BlockedReason   string   `json:"blocked_reason,omitempty"`
}

func toResp(c *model.Customer) CustomerResp {
	today := datex.Day(time.Now())
	return CustomerResp{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		BirthDate:       datex.Format(c.BirthDate),
		Age:             c.Age(today),
		LicenseNumber:   c.LicenseNumber,
		LicenseTypes:    c.LicenseTypes,
		LicenseDate:     datex.Format(c.LicenseDate),
		YearsOfLicense:  c.YearsOfLicense(today),
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		TotalRentals:    c.TotalRentals(),
		ActiveRentals:   c.ActiveRentals,
		Loyal:           c.IsLoyal(),
		LoyaltyDiscount: c.LoyaltyDiscount(),
		Blocked:         c.Blocked,
		BlockedReason:   c.BlockedReason,
	}
}

func toRespList(cs []*model.Customer) []CustomerResp {
	out := make([]CustomerResp, 0, len(cs))
	for _, c := range cs {
		out = append(out, toResp(c))
	}
	return out
}
