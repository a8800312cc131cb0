package service

import (
	"time"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// patientDocument maps a full record to its store shape.
func patientDocument(u *domain.UserRecord) ports.Document {
	doc := ports.Document{
		"uid":              u.ID,
		"firstName":        u.FirstName,
		"secondName":       u.SecondName,
		"dateOfBirth":      nil,
		"email":            u.Email,
		"gender":           string(u.Gender),
		"enabled":          u.Enabled,
		"createdAt":        u.CreatedAt,
		"modifiedAt":       u.ModifiedAt,
		"currentCondition": u.CurrentCondition,
		"medicalHistory":   u.MedicalHistory,
		"symptoms":         nonNil(u.Symptoms),
		"therapeuticPlans": nonNil(u.TherapeuticPlans),
	}
	if u.DateOfBirth != nil {
		doc["dateOfBirth"] = u.DateOfBirth.UTC()
	}
	if u.Avatar != "" {
		doc["avatar"] = u.Avatar
	}
	return doc
}

// editsDocument holds exactly the edited display fields plus modifiedAt.
func editsDocument(e domain.ProfileEdits, modifiedAt time.Time) ports.Document {
	doc := ports.Document{"modifiedAt": modifiedAt}
	if e.FirstName != nil {
		doc["firstName"] = *e.FirstName
	}
	if e.SecondName != nil {
		doc["secondName"] = *e.SecondName
	}
	if e.DateOfBirth != nil {
		doc["dateOfBirth"] = e.DateOfBirth.UTC()
	}
	if e.Email != nil {
		doc["email"] = *e.Email
	}
	if e.Gender != nil {
		doc["gender"] = string(*e.Gender)
	}
	if e.Avatar != nil {
		doc["avatar"] = *e.Avatar
	}
	return doc
}

func patientFromDocument(doc ports.Document) *domain.UserRecord {
	u := &domain.UserRecord{
		ID:               docString(doc, "uid"),
		FirstName:        docString(doc, "firstName"),
		SecondName:       docString(doc, "secondName"),
		DateOfBirth:      docTimePtr(doc, "dateOfBirth"),
		Email:            docString(doc, "email"),
		Gender:           domain.Gender(docString(doc, "gender")),
		Enabled:          docBool(doc, "enabled"),
		CreatedAt:        docTime(doc, "createdAt"),
		ModifiedAt:       docTime(doc, "modifiedAt"),
		Avatar:           docString(doc, "avatar"),
		CurrentCondition: docString(doc, "currentCondition"),
		MedicalHistory:   docString(doc, "medicalHistory"),
		Symptoms:         docStrings(doc, "symptoms"),
		TherapeuticPlans: docStrings(doc, "therapeuticPlans"),
	}
	if u.ID == "" {
		u.ID = docString(doc, "_id")
	}
	if u.Gender == "" {
		u.Gender = domain.GenderUnset
	}
	return u
}

func videoFromDocument(doc ports.Document) domain.VideoItem {
	v := domain.VideoItem{
		ID:          docString(doc, "uid"),
		Title:       docString(doc, "title"),
		Description: docString(doc, "description"),
		URL:         docString(doc, "url"),
		CreatedAt:   docTime(doc, "createdAt"),
		ModifiedAt:  docTime(doc, "modifiedAt"),
		Enabled:     docBool(doc, "enabled"),
		Symptoms:    docStrings(doc, "symptoms"),
		Thumbnail:   docString(doc, "thumbnail"),
	}
	if v.ID == "" {
		v.ID = docString(doc, "_id")
	}
	return v
}

func docString(doc ports.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

// docBool also accepts the string form older clients wrote.
func docBool(doc ports.Document, key string) bool {
	switch v := doc[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func docTime(doc ports.Document, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v.UTC()
	case *time.Time:
		if v != nil {
			return v.UTC()
		}
	}
	return time.Time{}
}

func docTimePtr(doc ports.Document, key string) *time.Time {
	t := docTime(doc, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func docStrings(doc ports.Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
