package services

import (
	"strings"

	"github.com/Dosada05/referee-review/models"
)

// PhotoURLResolver is the part of storage.FileUploader needed to build public links.
type PhotoURLResolver interface {
	GetPublicURL(key string) string
}

func populateRefereePhotoURL(referee *models.Referee, photos PhotoURLResolver) {
	if referee == nil || referee.PhotoKey == nil || *referee.PhotoKey == "" || photos == nil {
		return
	}
	url := photos.GetPublicURL(*referee.PhotoKey)
	referee.PhotoURL = &url
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optionalString обрезает пробелы и превращает пустую строку в nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
