package fleet

import "errors"

// errors used by controllers

type ErrCode string

const (
	ErrVehicleNotFound     ErrCode = "VEHICLE_NOT_FOUND"
	ErrVehicleExists       ErrCode = "VEHICLE_EXISTS"
	ErrVehicleNotAvailable ErrCode = "VEHICLE_NOT_AVAILABLE"
	ErrVehicleRented       ErrCode = "VEHICLE_RENTED"

	ErrCustomerNotFound   ErrCode = "CUSTOMER_NOT_FOUND"
	ErrCustomerExists     ErrCode = "CUSTOMER_EXISTS"
	ErrCustomerHasRentals ErrCode = "CUSTOMER_HAS_RENTALS"

	// Eligibility rejections, one code per distinct reason.
	ErrCustomerBlocked  ErrCode = "CUSTOMER_BLOCKED"
	ErrAgeTooYoung      ErrCode = "AGE_TOO_YOUNG"
	ErrLicenseNotHeld   ErrCode = "LICENSE_NOT_HELD"
	ErrLicenseTooRecent ErrCode = "LICENSE_TOO_RECENT"

	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrInvalidDates   ErrCode = "INVALID_DATES"
	ErrInvalidMileage ErrCode = "INVALID_MILEAGE"
	ErrInvalidRate    ErrCode = "INVALID_RATE"
	ErrInvalidStatus  ErrCode = "INVALID_STATUS"
)

// codedError is a business rejection carrying a stable code plus the
// human reason, so callers can show the exact cause.
type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, or "" for non-business errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
