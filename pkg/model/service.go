package model

import "slices"

const (
	ServiceGeneralConsultation  = "General Consultation"
	ServiceAcneTreatment        = "Acne Treatment"
	ServiceSkinCancerScreening  = "Skin Cancer Screening"
	ServiceCosmeticConsultation = "Cosmetic Consultation"
	ServiceMoleRemoval          = "Mole Removal"
	ServiceLaserTreatment       = "Laser Treatment"
	ServiceChemicalPeel         = "Chemical Peel"
	ServiceBotoxTreatment       = "Botox Treatment"

	DefaultService = ServiceGeneralConsultation
)

var services = []string{
	ServiceGeneralConsultation,
	ServiceAcneTreatment,
	ServiceSkinCancerScreening,
	ServiceCosmeticConsultation,
	ServiceMoleRemoval,
	ServiceLaserTreatment,
	ServiceChemicalPeel,
	ServiceBotoxTreatment,
}

// Services lists the bookable service labels in display order.
func Services() []string {
	return slices.Clone(services)
}

func IsService(label string) bool {
	return slices.Contains(services, label)
}
