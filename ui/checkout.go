package ui

// CheckoutForm tracks the radio selections of the checkout page.
type CheckoutForm struct {
	SelectedAddress string
	UseNewAddress   bool
	Payment         string
}

// PaymentCOD is the first payment option and the default selection.
const PaymentCOD = "cod"

// InitPayment selects the first option when none is checked yet.
func (f CheckoutForm) InitPayment(options []string) CheckoutForm {
	if f.Payment != "" || len(options) == 0 {
		return f
	}
	f.Payment = options[0]
	return f
}

func (f CheckoutForm) SelectPayment(option string) CheckoutForm {
	f.Payment = option
	return f
}

func (f CheckoutForm) SelectAddress(id string) CheckoutForm {
	f.SelectedAddress = id
	f.UseNewAddress = false
	return f
}

// AddNewAddress switches to the new-address form and drops any saved
// address selection.
func (f CheckoutForm) AddNewAddress() CheckoutForm {
	f.SelectedAddress = ""
	f.UseNewAddress = true
	return f
}

// CancelNewAddress returns to the saved address list.
func (f CheckoutForm) CancelNewAddress(savedIDs []string) CheckoutForm {
	f.UseNewAddress = false
	if f.SelectedAddress == "" && len(savedIDs) > 0 {
		f.SelectedAddress = savedIDs[0]
	}
	return f
}
