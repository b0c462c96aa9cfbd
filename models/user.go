package models

import "time"

// Critical-field names a user may expose through emergency access.
const (
	CriticalBloodType         = "bloodType"
	CriticalAllergies         = "allergies"
	CriticalEmergencyContact  = "emergencyContact"
	CriticalChronicConditions = "chronicConditions"
	CriticalMedications       = "medications"
	CriticalHealthMetrics     = "healthMetrics"
)

// EmergencyContact is a person to notify when an SOS fires.
type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

// Reachable reports whether the contact can be notified at all.
func (c EmergencyContact) Reachable() bool {
	return c.Name != "" || c.Phone != "" || c.Email != ""
}

// EmergencyMode configures what an SOS exposes and who else to involve.
type EmergencyMode struct {
	CriticalFields  []string `bson:"criticalFields,omitempty" json:"criticalFields,omitempty"`
	HospitalContact string   `bson:"hospitalContact,omitempty" json:"hospitalContact,omitempty"`
}

// HealthMetric is one recorded measurement (blood pressure, weight, ...).
type HealthMetric struct {
	Type       string    `bson:"type" json:"type"`
	Value      string    `bson:"value" json:"value"`
	Unit       string    `bson:"unit,omitempty" json:"unit,omitempty"`
	RecordedAt time.Time `bson:"recordedAt" json:"recordedAt"`
}

// User is the directory view of an account holder. Registration and
// authentication live outside this service; the engine only reads users.
type User struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Username    string     `bson:"username" json:"username"`
	Email       string     `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string     `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	PhotoURL    string     `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	FCMToken    string     `bson:"fcmToken,omitempty" json:"-"`

	BloodType         string         `bson:"bloodType,omitempty" json:"bloodType,omitempty"`
	Allergies         []string       `bson:"allergies,omitempty" json:"allergies,omitempty"`
	ChronicConditions []string       `bson:"chronicConditions,omitempty" json:"chronicConditions,omitempty"`
	HealthMetrics     []HealthMetric `bson:"healthMetrics,omitempty" json:"healthMetrics,omitempty"`

	EmergencyContact   EmergencyContact   `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	AdditionalContacts []EmergencyContact `bson:"additionalContacts,omitempty" json:"additionalContacts,omitempty"`
	EmergencyMode      EmergencyMode      `bson:"emergencyMode,omitempty" json:"emergencyMode,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
