package photos

import (
	"net/http"

	"github.com/handleme/gallery/api/common"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/gin-gonic/gin"
)

// SubmitPhoto handles the multipart submission form. Validation happens
// in the service before anything touches storage or the database.
func (h *Handler) SubmitPhoto(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	input := &photoSvc.SubmitInput{
		Title:    c.PostForm("title"),
		Location: c.PostForm("location"),
		Tags:     form.Value["tags"],
		Consent:  c.PostForm("consent") == "true",
	}

	if files := form.File["file"]; len(files) > 0 {
		fileHeader := files[0]

		file, err := fileHeader.Open()
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		defer file.Close()

		input.File = file
		input.FileName = fileHeader.Filename
		input.FileSize = fileHeader.Size
	}

	record, err := h.submitService.Submit(c.Request.Context(), input)
	if err != nil {
		if photoSvc.IsValidationError(err) {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.RespondSuccessMessage(c, "Your photo is in the review queue.", gin.H{
		"id":         record.Identifier,
		"title":      record.Title,
		"location":   record.Location,
		"image_path": record.ImagePath,
		"status":     record.Status,
		"like_count": record.LikeCount,
		"tags":       record.TagList(),
	})
}
