package server

type UploadDocumentRequest struct {
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

type UploadDocumentResponse struct {
	DocumentID      string `json:"document_id"`
	Filename        string `json:"filename"`
	NumPages        int    `json:"num_pages"`
	Language        string `json:"language"`
	FileExt         string `json:"file_ext"`
	Status          string `json:"status"`
	OriginalPDFPath string `json:"original_pdf_path,omitempty"`
	EnglishPDFPath  string `json:"english_pdf_path,omitempty"`
}

type DocumentRequest struct {
	DocumentID string `json:"document_id"`
}

type GetMetadataResponse struct {
	Filename       string `json:"filename"`
	FileExt        string `json:"file_ext"`
	Language       string `json:"language"`
	Status         string `json:"status"`
	PageCount      int    `json:"page_count"`
	NativeText     string `json:"native_text"`
	TranslatedText string `json:"translated_text"`
}

type GetFileRequest struct {
	DocumentID string `json:"document_id"`
	Lang       string `json:"lang"` // native (default) | english
}

type FileResponse struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"content"`
}

type ChatRequest struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	ChatID string `json:"chat_id,omitempty"`
}

type UserRequest struct {
	UserID string `json:"user_id"`
}

type DocumentSummary struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Kind      string `json:"kind"`
	Language  string `json:"language"`
	PageCount int    `json:"page_count"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

type UserDocumentRequest struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
}

type MessageView struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type GetChatResponse struct {
	ChatID   string        `json:"chat_id,omitempty"`
	Messages []MessageView `json:"messages"`
}

type SaveMessageRequest struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	Content    string `json:"content"`
}

type SaveMessageResponse struct {
	MessageID string `json:"message_id"`
}

type DeleteDocumentResponse struct {
	Success bool `json:"success"`
}

type SubmitFeedbackRequest struct {
	UserID       string `json:"user_id"`
	DocumentID   string `json:"document_id,omitempty"`
	FeedbackText string `json:"feedback_text"`
	FeedbackType string `json:"feedback_type,omitempty"`
	Rating       int    `json:"rating,omitempty"`
}

type SubmitFeedbackResponse struct {
	FeedbackID string `json:"feedback_id"`
}

type FeedbackView struct {
	ID           string `json:"id"`
	DocumentID   string `json:"document_id,omitempty"`
	FeedbackText string `json:"feedback_text"`
	FeedbackType string `json:"feedback_type"`
	Rating       int    `json:"rating,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ListFeedbackResponse struct {
	Feedback []FeedbackView `json:"feedback"`
}

type ExportDocumentResponse struct {
	Xlsx []byte `json:"xlsx"`
}
