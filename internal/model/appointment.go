package model

import (
	"time"
)

type PatientType string

const (
	PatientTypeNew       PatientType = "new"
	PatientTypeReturning PatientType = "returning"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodInsurance PaymentMethod = "insurance"
)

// Appointment claims exactly one time slot by its (date, time) pair.
type Appointment struct {
	ID                    int64         `db:"id" json:"id"`
	ServiceID             int64         `db:"service_id" json:"serviceId"`
	PatientName           string        `db:"patient_name" json:"patientName"`
	PatientLastName       string        `db:"patient_last_name" json:"patientLastName"`
	PatientDob            string        `db:"patient_dob" json:"patientDob"`
	Email                 string        `db:"email" json:"email"`
	Phone                 string        `db:"phone" json:"phone"`
	AppointmentDate       string        `db:"appointment_date" json:"appointmentDate"`
	AppointmentTime       string        `db:"appointment_time" json:"appointmentTime"`
	PatientType           PatientType   `db:"patient_type" json:"patientType"`
	PaymentMethod         PaymentMethod `db:"payment_method" json:"paymentMethod"`
	InsuranceProvider     *string       `db:"insurance_provider" json:"insuranceProvider"`
	Message               *string       `db:"message" json:"message"`
	BookingForSomeoneElse bool          `db:"booking_for_someone_else" json:"bookingForSomeoneElse"`
	Confirmed             bool          `db:"confirmed" json:"confirmed"`
	CreatedAt             time.Time     `db:"created_at" json:"createdAt"`
}

// CreateAppointmentRequest is the booking wizard payload.
type CreateAppointmentRequest struct {
	ServiceID             int64         `json:"serviceId" binding:"required,gt=0"`
	PatientName           string        `json:"patientName" binding:"required,max=100"`
	PatientLastName       string        `json:"patientLastName" binding:"required,max=100"`
	PatientDob            string        `json:"patientDob" binding:"required,datetime=2006-01-02"`
	Email                 string        `json:"email" binding:"required,email"`
	Phone                 string        `json:"phone" binding:"required,max=30"`
	AppointmentDate       string        `json:"appointmentDate" binding:"required,datetime=2006-01-02"`
	AppointmentTime       string        `json:"appointmentTime" binding:"required,slottime"`
	PatientType           PatientType   `json:"patientType" binding:"required,oneof=new returning"`
	PaymentMethod         PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash insurance"`
	InsuranceProvider     string        `json:"insuranceProvider" binding:"required_if=PaymentMethod insurance,max=100"`
	Message               string        `json:"message" binding:"max=2000"`
	BookingForSomeoneElse bool          `json:"bookingForSomeoneElse"`
}

// ToModel builds an unconfirmed appointment from the request.
func (r *CreateAppointmentRequest) ToModel() *Appointment {
	apt := &Appointment{
		ServiceID:             r.ServiceID,
		PatientName:           r.PatientName,
		PatientLastName:       r.PatientLastName,
		PatientDob:            r.PatientDob,
		Email:                 r.Email,
		Phone:                 r.Phone,
		AppointmentDate:       r.AppointmentDate,
		AppointmentTime:       r.AppointmentTime,
		PatientType:           r.PatientType,
		PaymentMethod:         r.PaymentMethod,
		BookingForSomeoneElse: r.BookingForSomeoneElse,
	}

	if r.PaymentMethod == PaymentMethodInsurance && r.InsuranceProvider != "" {
		provider := r.InsuranceProvider
		apt.InsuranceProvider = &provider
	}
	if r.Message != "" {
		msg := r.Message
		apt.Message = &msg
	}
	return apt
}
