package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/ocr"
)

// PhotoStorage persists the uploaded menu photo for the order record.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	engine  ocr.Engine
	store   Store
	storage PhotoStorage
}

func NewService(engine ocr.Engine, store Store, storage PhotoStorage) *Service {
	return &Service{engine: engine, store: store, storage: storage}
}

// ProcessPhoto runs one OCR session end to end: store the photo, extract
// dish candidates, normalize them into the canonical ephemeral menu, and
// publish the menu under a fresh session id.
//
// Engine failures are absorbed as "zero extracted items" — the traveler
// gets an empty menu and can retake the photo, never an opaque error.
func (s *Service) ProcessPhoto(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
	storeID string,
	travelerLang string,
) (*EphemeralMenu, error) {

	sessionID := uuid.New().String()

	image := &bytes.Buffer{}
	if _, err := image.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("read menu photo: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	key := fmt.Sprintf("menus/%s%s", sessionID, ext)
	if _, err := s.storage.Upload(ctx, key, bytes.NewReader(image.Bytes()), contentType); err != nil {
		// The photo copy is for the durable record only; extraction can
		// still run from the in-memory bytes.
		log.Printf("PHOTO_UPLOAD_FAILED session=%s: %v", sessionID, err)
	}

	raw, err := s.engine.Extract(ctx, image.Bytes(), contentType, travelerLang)
	if err != nil {
		log.Printf("EXTRACTION_FAILED session=%s: %v", sessionID, err)
		raw = nil
	}
	log.Printf("EXTRACTION_DONE session=%s records=%d", sessionID, len(raw))

	m := Normalize(sessionID, storeID, raw)

	if err := s.store.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("publish ephemeral menu: %w", err)
	}

	return m, nil
}

// GetMenu returns the published menu for a live OCR session.
func (s *Service) GetMenu(ctx context.Context, sessionID string) (*EphemeralMenu, error) {
	return s.store.Get(ctx, sessionID)
}
