package console

import "fitclub/internal/common"

func PromptAddress(c *Console) (common.AddressRequest, error) {
	var addr common.AddressRequest
	var err error
	if addr.Street, err = c.Prompt("Street"); err != nil {
		return addr, err
	}
	if addr.City, err = c.Prompt("City"); err != nil {
		return addr, err
	}
	if addr.State, err = c.PromptOptional("State"); err != nil {
		return addr, err
	}
	if addr.PostalCode, err = c.PromptOptional("Postal Code"); err != nil {
		return addr, err
	}
	if addr.Country, err = c.PromptOptional("Country"); err != nil {
		return addr, err
	}
	return addr, nil
}
