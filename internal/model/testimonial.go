package model

type Testimonial struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Content      string `db:"content" json:"content"`
	Rating       int    `db:"rating" json:"rating"`
	PatientSince string `db:"patient_since" json:"patientSince"`
}

type CreateTestimonialRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Content      string `json:"content" binding:"required,max=2000"`
	Rating       int    `json:"rating" binding:"required,gte=1,lte=5"`
	PatientSince string `json:"patientSince" binding:"required,max=20"`
}

func (r *CreateTestimonialRequest) ToModel() *Testimonial {
	return &Testimonial{
		Name:         r.Name,
		Content:      r.Content,
		Rating:       r.Rating,
		PatientSince: r.PatientSince,
	}
}
