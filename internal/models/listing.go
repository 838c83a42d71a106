// internal/models/listing.go
package models

// ListingRecord holds the flat field record parsed out of a chat-pasted
// property listing. It is produced once per request and immutable thereafter.
type ListingRecord struct {
	Address string `json:"address"`
	// Floor is the subject floor; negative means below grade, 0 means not stated.
	Floor int `json:"floor,omitempty"`
	// Ho is the unit label ("301호"), Dong the building wing label ("1동").
	Ho   string `json:"ho,omitempty"`
	Dong string `json:"dong,omitempty"`

	AreaM2       float64 `json:"areaM2,omitempty"`       // nominal exclusive area
	ActualAreaM2 float64 `json:"actualAreaM2,omitempty"` // usable/actual area

	Deposit        *int64 `json:"deposit,omitempty"`     // 만원
	MonthlyRent    *int64 `json:"monthlyRent,omitempty"` // 만원
	MaintenanceFee string `json:"maintenanceFee,omitempty"`

	Parking       string `json:"parking,omitempty"`
	Direction     string `json:"direction,omitempty"`
	Rights        string `json:"rights,omitempty"`
	MoveInDate    string `json:"moveInDate,omitempty"`
	BathroomCount string `json:"bathroomCount,omitempty"`
	Usage         string `json:"usage,omitempty"` // usage as stated in the chat, reference only

	ViolationBuilding bool   `json:"violationBuilding,omitempty"`
	ItemsText         string `json:"itemsText,omitempty"` // free-text remainder of the listing
}

// AddressCode holds the administrative codes derived from a listing address.
type AddressCode struct {
	SigunguCode string `json:"sigunguCode"`
	BjdongCode  string `json:"bjdongCode"`
	Bun         string `json:"bun"`
	Ji          string `json:"ji"`
}

// Complete reports whether the code can be used for a registry lookup.
func (a AddressCode) Complete() bool {
	return a.SigunguCode != "" && a.BjdongCode != ""
}
