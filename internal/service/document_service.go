package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"agrotoken/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReceiptFileSize bounds uploads; receipts are single-page documents.
const maxReceiptFileSize = 10 << 20

// StoredDocument is an uploaded receipt file kept on local disk.
type StoredDocument struct {
	ID       uuid.UUID
	Path     string
	FileURL  string
	Metadata models.FileMetadata
}

// DocumentService stores uploaded receipt files and derives the file
// metadata used by the authenticity checks.
type DocumentService struct {
	uploadDir string
	logger    *zap.Logger
}

func NewDocumentService(uploadDir string, logger *zap.Logger) *DocumentService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &DocumentService{
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// SaveDocument writes the file under a fresh ID. createdDate is the
// client-reported modification time and may be nil.
func (s *DocumentService) SaveDocument(ctx context.Context, file io.Reader, fileName string, createdDate *time.Time) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileID := uuid.New()
	newFileName := fileID.String() + filepath.Ext(fileName)
	filePath := filepath.Join(s.uploadDir, newFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// keep the head of the file to read the PDF producer from
	var head bytes.Buffer
	fileSize, err := io.Copy(io.MultiWriter(dst, &limitedBuffer{buf: &head, limit: 64 << 10}), io.LimitReader(file, maxReceiptFileSize+1))
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	if fileSize > maxReceiptFileSize {
		os.Remove(filePath)
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxReceiptFileSize)
	}

	doc := &StoredDocument{
		ID:      fileID,
		Path:    filePath,
		FileURL: "/uploads/" + newFileName,
		Metadata: models.FileMetadata{
			CreatedDate: createdDate,
			Size:        fileSize,
			Name:        fileName,
			Producer:    pdfProducer(head.Bytes()),
		},
	}

	s.logger.Info("Receipt document stored",
		zap.String("document_id", fileID.String()),
		zap.String("file_name", fileName),
		zap.Int64("size", fileSize),
	)
	return doc, nil
}

// pdfProducer returns the literal-string /Producer entry of an uncompressed
// PDF info dictionary, or "" when absent.
func pdfProducer(data []byte) string {
	idx := bytes.Index(data, []byte("/Producer"))
	if idx < 0 {
		return ""
	}
	rest := bytes.TrimLeft(data[idx+len("/Producer"):], " \t\r\n")
	if len(rest) == 0 || rest[0] != '(' {
		return ""
	}
	end := bytes.IndexByte(rest, ')')
	if end < 0 {
		return ""
	}
	return sanitizeUTF8(string(rest[1:end]))
}

// limitedBuffer keeps the first limit bytes written and discards the rest.
type limitedBuffer struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitedBuffer) Write(p []byte) (int, error) {
	if room := w.limit - w.buf.Len(); room > 0 {
		if len(p) > room {
			w.buf.Write(p[:room])
		} else {
			w.buf.Write(p)
		}
	}
	return len(p), nil
}
