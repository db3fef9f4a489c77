package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Email             string `json:"email" binding:"required,email"`
	AppointmentDate   string `json:"appointmentDate" binding:"required,datetime=2006-01-02"`
	AppointmentTime   string `json:"appointmentTime" binding:"required,slottime"`
	PaymentMethod     string `json:"paymentMethod" binding:"required,oneof=cash insurance"`
	InsuranceProvider string `json:"insuranceProvider" binding:"required_if=PaymentMethod insurance"`
}

func validForm() bookingForm {
	return bookingForm{
		Email:           "jane@example.com",
		AppointmentDate: "2025-04-07",
		AppointmentTime: "9:00 AM",
		PaymentMethod:   "cash",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *bookingForm)
		wantMsg string
	}{
		{
			name:   "valid",
			mutate: func(f *bookingForm) {},
		},
		{
			name:    "missing email",
			mutate:  func(f *bookingForm) { f.Email = "" },
			wantMsg: "email is required",
		},
		{
			name:    "malformed email",
			mutate:  func(f *bookingForm) { f.Email = "jane" },
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "bad date",
			mutate:  func(f *bookingForm) { f.AppointmentDate = "07/04/2025" },
			wantMsg: "appointmentDate must be a YYYY-MM-DD date",
		},
		{
			name:    "bad time",
			mutate:  func(f *bookingForm) { f.AppointmentTime = "09:00" },
			wantMsg: "appointmentTime must look like 9:00 AM",
		},
		{
			name:    "unknown payment method",
			mutate:  func(f *bookingForm) { f.PaymentMethod = "card" },
			wantMsg: "paymentMethod must be one of cash insurance",
		},
		{
			name:    "insurance without provider",
			mutate:  func(f *bookingForm) { f.PaymentMethod = "insurance" },
			wantMsg: "insuranceProvider is required when paymentMethod is insurance",
		},
		{
			name: "insurance with provider",
			mutate: func(f *bookingForm) {
				f.PaymentMethod = "insurance"
				f.InsuranceProvider = "Delta Dental"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := ValidateStruct(&form)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestIsSlotTime(t *testing.T) {
	for _, s := range []string{"9:00 AM", "12:30 PM", "5:30 PM", "10:00 AM"} {
		assert.True(t, IsSlotTime(s), s)
	}
	for _, s := range []string{"09:00 AM", "13:00 PM", "9:00", "9:00 am", ""} {
		assert.False(t, IsSlotTime(s), s)
	}
}

func TestSetupBinding(t *testing.T) {
	require.NoError(t, SetupBinding())
	require.NoError(t, SetupBinding())
}
