package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	maxUploadFiles    = 3
	maxFileSizeBytes  = 10 * 1024 * 1024 // 10MB per file
	maxBatchSizeBytes = 30 * 1024 * 1024 // 30MB combined
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/heic": true,
}

type UploadImagesUseCase struct {
	Store ImageStore
}

func NewUploadImagesUseCase(store ImageStore) *UploadImagesUseCase {
	return &UploadImagesUseCase{Store: store}
}

// Execute validates the whole batch up front, then uploads the files in
// parallel. URLs come back in input order. A failed upload fails the batch;
// files already stored are not deleted.
func (uc *UploadImagesUseCase) Execute(ctx context.Context, files []UploadFile) (*UploadImagesOutput, error) {
	if err := validateBatch(files); err != nil {
		return nil, err
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()
			key := uuid.New().String() + "-" + file.Filename
			url, err := uc.Store.Put(ctx, key, file.ContentType, file.Body)
			urls[i] = url
			errs[i] = err
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, &DomainError{
				Code:    CodeUpload,
				Message: "Failed to upload images: " + err.Error(),
			}
		}
	}

	return &UploadImagesOutput{Success: true, URLs: urls}, nil
}

func validateBatch(files []UploadFile) error {
	if len(files) == 0 {
		return &DomainError{Code: CodeValidation, Message: "No files uploaded"}
	}
	if len(files) > maxUploadFiles {
		return &DomainError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("Too many files: maximum is %d", maxUploadFiles),
		}
	}

	var total int64
	for _, file := range files {
		if !allowedImageTypes[file.ContentType] {
			return &DomainError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("File type %q is not allowed (JPEG, PNG or HEIC only)", file.ContentType),
			}
		}
		if file.Size > maxFileSizeBytes {
			return &DomainError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("File %q exceeds the 10MB limit", file.Filename),
			}
		}
		total += file.Size
	}
	if total > maxBatchSizeBytes {
		return &DomainError{Code: CodeValidation, Message: "Combined upload size exceeds the 30MB limit"}
	}
	return nil
}
