package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeImageStore records puts and derives URLs from keys, so order
// assertions are meaningful.
type fakeImageStore struct {
	mu   sync.Mutex
	puts []string
	fail bool
}

func (s *fakeImageStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("blob store unavailable")
	}
	s.puts = append(s.puts, key)
	return "https://cdn.example.com/" + key, nil
}

func jpeg(name string, size int64) UploadFile {
	return UploadFile{
		Filename:    name,
		Size:        size,
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpegdata"),
	}
}

func TestUploadImagesPreservesOrder(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	files := []UploadFile{jpeg("front.jpg", 1024), jpeg("side.jpg", 2048), jpeg("detail.jpg", 512)}

	output, err := uc.Execute(context.Background(), files)

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Len(t, output.URLs, 3)
	assert.Contains(t, output.URLs[0], "front.jpg")
	assert.Contains(t, output.URLs[1], "side.jpg")
	assert.Contains(t, output.URLs[2], "detail.jpg")
}

func TestUploadImagesKeysAreCollisionResistant(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	_, err := uc.Execute(context.Background(), []UploadFile{jpeg("door.jpg", 100), jpeg("door.jpg", 100)})

	assert.NoError(t, err)
	assert.Len(t, store.puts, 2)
	assert.NotEqual(t, store.puts[0], store.puts[1])
}

func TestUploadImagesTooManyFiles(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	files := []UploadFile{jpeg("1.jpg", 10), jpeg("2.jpg", 10), jpeg("3.jpg", 10), jpeg("4.jpg", 10)}

	output, err := uc.Execute(context.Background(), files)

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
	assert.Empty(t, store.puts, "no partial uploads on a rejected batch")
}

func TestUploadImagesFileTooLarge(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	output, err := uc.Execute(context.Background(), []UploadFile{jpeg("huge.jpg", 11*1024*1024)})

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
	assert.Empty(t, store.puts)
}

func TestUploadImagesBatchTooLarge(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	files := []UploadFile{
		jpeg("a.jpg", 10*1024*1024),
		jpeg("b.jpg", 10*1024*1024),
		jpeg("c.jpg", 10*1024*1024+1),
	}

	output, err := uc.Execute(context.Background(), files)

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
	assert.Empty(t, store.puts)
}

func TestUploadImagesRejectsDisallowedType(t *testing.T) {
	store := &fakeImageStore{}
	uc := NewUploadImagesUseCase(store)

	files := []UploadFile{{
		Filename:    "door.gif",
		Size:        100,
		ContentType: "image/gif",
		Body:        strings.NewReader("gifdata"),
	}}

	output, err := uc.Execute(context.Background(), files)

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
	assert.Empty(t, store.puts)
}

func TestUploadImagesEmptyBatch(t *testing.T) {
	uc := NewUploadImagesUseCase(&fakeImageStore{})

	output, err := uc.Execute(context.Background(), nil)

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
}

func TestUploadImagesStoreFailureFailsBatch(t *testing.T) {
	uc := NewUploadImagesUseCase(&fakeImageStore{fail: true})

	output, err := uc.Execute(context.Background(), []UploadFile{jpeg("door.jpg", 100)})

	assert.Nil(t, output)
	assert.Equal(t, CodeUpload, DomainErrorCode(err))
}
