package client

import "github.com/fivetwenty-io/opencart-client/pkg/opencart"

// addressPayload is the body shared by payment/address and shipping/address.
func addressPayload(address opencart.Address) opencart.Payload {
	return opencart.Payload{
		"firstname":  address.Firstname,
		"lastname":   address.Lastname,
		"company":    address.Company,
		"address_1":  address.Address1,
		"address_2":  address.Address2,
		"postcode":   address.Postcode,
		"city":       address.City,
		"zone_id":    address.ZoneID,
		"country_id": address.CountryID,
	}
}
