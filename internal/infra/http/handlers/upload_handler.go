package handlers

import (
	"net/http"

	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

// maxMultipartMemory bounds how much of the upload is buffered in memory;
// the rest spills to temp files.
const maxMultipartMemory = 32 << 20

type UploadHandler struct {
	UploadUseCase *usecase.UploadImagesUseCase
}

func NewUploadHandler(uploadUC *usecase.UploadImagesUseCase) *UploadHandler {
	return &UploadHandler{UploadUseCase: uploadUC}
}

// UploadImages accepts the multipart batch under the "images" field and
// responds with the stored URLs in input order.
func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["images"]

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Could not read uploaded file", Details: err.Error()})
			return
		}
		defer f.Close()

		files = append(files, usecase.UploadFile{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	output, err := h.UploadUseCase.Execute(r.Context(), files)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.RecordImagesUploaded(len(output.URLs))

	respondJSON(w, http.StatusOK, output)
}
