package seed

import "github.com/kabz8/Nextcare/internal/model"

var services = []model.Service{
	{
		Name:        "Teeth Whitening",
		Description: "Professional teeth whitening treatments to remove stains and discoloration, giving you a brighter, more confident smile.",
		Icon:        "teeth",
	},
	{
		Name:        "Cosmetic Dentistry",
		Description: "Enhance your smile with our range of cosmetic procedures including veneers, bonding, and smile makeovers.",
		Icon:        "tooth",
	},
	{
		Name:        "Dental Implants",
		Description: "Replace missing teeth with dental implants that look, feel, and function just like your natural teeth.",
		Icon:        "teeth-open",
	},
	{
		Name:        "Regular Cleanings",
		Description: "Maintain your oral health with regular professional cleanings and comprehensive dental examinations.",
		Icon:        "clipboard-check",
	},
	{
		Name:        "Invisalign",
		Description: "Straighten your teeth discreetly with Invisalign clear aligners, the modern alternative to traditional braces.",
		Icon:        "align-left",
	},
	{
		Name:        "Emergency Care",
		Description: "Quick relief for dental emergencies including toothaches, broken teeth, and other urgent dental issues.",
		Icon:        "first-aid",
	},
	{
		Name:        "Botox",
		Description: "Botox treatments for both cosmetic and therapeutic purposes including TMJ treatment and facial rejuvenation.",
		Icon:        "magic-wand-sparkles",
	},
	{
		Name:        "Dental Implant Consult",
		Description: "Visiting a dentist to replace broken or missing teeth. Following the exam, the dentist will offer recommendations for care, provide the opportunity to discuss treatment, finances and address any questions.",
		Icon:        "teeth-open",
	},
	{
		Name:        "Invisalign Consult",
		Description: "Meet with our specialists to discuss if Invisalign is right for you. Get all your questions answered and learn about the process.",
		Icon:        "align-left",
	},
	{
		Name:        "New Patient Cleaning & Exam (14 & under)",
		Description: "Comprehensive dental examination and cleaning for new patients ages 14 and under.",
		Icon:        "clipboard-check",
	},
	{
		Name:        "New Patient Cleaning & Exam - Adult",
		Description: "Comprehensive dental examination and cleaning for new adult patients.",
		Icon:        "clipboard-check",
	},
	{
		Name:        "New Patient Emergency/Tooth Pain",
		Description: "Urgent care for new patients experiencing dental emergencies or tooth pain.",
		Icon:        "first-aid",
	},
}

var testimonials = []model.Testimonial{
	{
		Name:         "Jane M.",
		Content:      "I've been going to Nextcare Dental Studio for years. The staff is incredibly friendly and the care is top-notch. I would recommend them to anyone looking for quality dental care!",
		Rating:       5,
		PatientSince: "2018",
	},
	{
		Name:         "Robert T.",
		Content:      "I was terrified of dental work until I found Nextcare Dental Studio. Their gentle approach and concern for patient comfort has completely changed my perspective. Now I actually look forward to my appointments!",
		Rating:       5,
		PatientSince: "2020",
	},
	{
		Name:         "Sarah C.",
		Content:      "My Invisalign treatment has been life-changing! The team at Nextcare Dental Studio was professional, supportive, and the results exceeded my expectations. I can't stop smiling now!",
		Rating:       5,
		PatientSince: "2021",
	},
}

var products = []model.Product{
	{
		Name:        "Premium Electric Toothbrush",
		Description: "Advanced sonic technology with multiple cleaning modes and smart timer for optimal dental hygiene.",
		Price:       "79.99",
		ImageURL:    "/assets/products/electric-toothbrush.jpg",
		Category:    "dental-care",
		Stock:       25,
		Featured:    true,
	},
	{
		Name:        "Antibacterial Mouthwash",
		Description: "Alcohol-free formula that kills 99.9% of germs that cause bad breath, plaque, and gingivitis.",
		Price:       "12.99",
		ImageURL:    "/assets/products/mouthwash.jpg",
		Category:    "dental-care",
		Stock:       50,
		Featured:    true,
	},
	{
		Name:        "Professional Teeth Whitening Kit",
		Description: "Dental-grade whitening system for professional results at home. Removes years of stains in just days.",
		Price:       "59.99",
		ImageURL:    "/assets/products/whitening-kit.jpg",
		Category:    "whitening",
		Stock:       15,
		Featured:    true,
	},
	{
		Name:        "Invisalign Clear Aligners",
		Description: "Custom-made clear aligners for discreet teeth straightening. Consultation required before purchase.",
		Price:       "1999.99",
		ImageURL:    "/assets/products/invisalign.jpg",
		Category:    "orthodontics",
		Stock:       10,
		Featured:    true,
	},
	{
		Name:        "Sensitive Teeth Toothpaste",
		Description: "Clinically proven relief for sensitive teeth. Builds lasting protection against sensitivity with regular use.",
		Price:       "8.99",
		ImageURL:    "/assets/products/sensitive-toothpaste.jpg",
		Category:    "dental-care",
		Stock:       45,
	},
	{
		Name:        "Water Flosser",
		Description: "High-pressure water stream removes debris and bacteria deep between teeth and below the gumline.",
		Price:       "49.99",
		ImageURL:    "/assets/products/water-flosser.jpg",
		Category:    "dental-care",
		Stock:       20,
	},
	{
		Name:        "Orthodontic Wax",
		Description: "Provides relief from braces irritation. Safe, non-toxic formula that's easy to apply.",
		Price:       "5.99",
		ImageURL:    "/assets/products/ortho-wax.jpg",
		Category:    "orthodontics",
		Stock:       60,
	},
	{
		Name:        "Fluoride Dental Rinse",
		Description: "Strengthens enamel and helps prevent cavities. Ideal for daily use after brushing.",
		Price:       "7.99",
		ImageURL:    "/assets/products/fluoride-rinse.jpg",
		Category:    "dental-care",
		Stock:       40,
	},
}
