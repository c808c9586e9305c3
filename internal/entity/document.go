package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/linguabridge/constants"
	"github.com/joseph-ayodele/linguabridge/internal/language"
)

// Document is one uploaded file and where its generated artifacts live.
type Document struct {
	ID             uuid.UUID                `json:"id"`
	UserID         string                   `json:"user_id"`
	Filename       string                   `json:"filename"`
	StoredPath     string                   `json:"stored_path"`
	Kind           constants.FileKind       `json:"kind"`
	Language       language.Code            `json:"language"`
	PageCount      int                      `json:"page_count"`
	Status         constants.DocumentStatus `json:"status"`
	NativePDFPath  string                   `json:"native_pdf_path,omitempty"`
	EnglishPDFPath string                   `json:"english_pdf_path,omitempty"`
	ContentHash    string                   `json:"content_hash,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// Translation is the native and English text of one page. Pages are numbered from 1.
type Translation struct {
	ID             uuid.UUID `json:"id"`
	DocumentID     uuid.UUID `json:"document_id"`
	PageNumber     int       `json:"page_number"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	CreatedAt      time.Time `json:"created_at"`
}
